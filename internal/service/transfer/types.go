package transfer

import (
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// DocumentVersion is the current export document version.
const DocumentVersion = 1

// Scope selects which part of each record a document carries.
type Scope string

const (
	// ScopeFull carries complete records.
	ScopeFull Scope = "FULL"
	// ScopeRecords carries scheduling state and history, no solutions.
	ScopeRecords Scope = "RECORDS"
	// ScopeSolutions carries solutions only.
	ScopeSolutions Scope = "SOLUTIONS"
)

func (s Scope) IsValid() bool {
	switch s {
	case ScopeFull, ScopeRecords, ScopeSolutions:
		return true
	}
	return false
}

// Document is the bulk export/import format: a mapping from problem ID to
// its (possibly scope-filtered) raw record.
type Document struct {
	Version    int                         `json:"version"`
	Scope      Scope                       `json:"scope"`
	ExportedAt time.Time                   `json:"exportedAt"`
	Records    map[string]domain.RawRecord `json:"records"`
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Scope    Scope `json:"scope"`
	Imported int   `json:"imported"`
	Created  int   `json:"created"`
	Merged   int   `json:"merged"`
}
