// Package domain holds typed identifiers shared across modules. Each ID is a
// distinct named UUID type so a NomineeID can never be passed where a
// PrincipalID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

type (
	PrincipalID uuid.UUID
	NomineeID   uuid.UUID
	TemplateID  uuid.UUID
	DocumentID  uuid.UUID
	SessionID   uuid.UUID
)

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return u, nil
}

func ParsePrincipalID(s string) (PrincipalID, error) {
	u, err := parseUUID(s, "principal ID")
	return PrincipalID(u), err
}

func ParseNomineeID(s string) (NomineeID, error) {
	u, err := parseUUID(s, "nominee ID")
	return NomineeID(u), err
}

func ParseTemplateID(s string) (TemplateID, error) {
	u, err := parseUUID(s, "template ID")
	return TemplateID(u), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parseUUID(s, "document ID")
	return DocumentID(u), err
}

func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session ID")
	return SessionID(u), err
}

func NewPrincipalID() PrincipalID { return PrincipalID(uuid.New()) }
func NewNomineeID() NomineeID     { return NomineeID(uuid.New()) }
func NewTemplateID() TemplateID   { return TemplateID(uuid.New()) }
func NewDocumentID() DocumentID   { return DocumentID(uuid.New()) }
func NewSessionID() SessionID     { return SessionID(uuid.New()) }

func (id PrincipalID) String() string { return uuid.UUID(id).String() }
func (id NomineeID) String() string   { return uuid.UUID(id).String() }
func (id TemplateID) String() string  { return uuid.UUID(id).String() }
func (id DocumentID) String() string  { return uuid.UUID(id).String() }
func (id SessionID) String() string   { return uuid.UUID(id).String() }

func (id PrincipalID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id NomineeID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TemplateID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders IDs as canonical UUID strings in JSON.
func (id PrincipalID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id NomineeID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id TemplateID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id DocumentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id SessionID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *PrincipalID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *NomineeID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *TemplateID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DocumentID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SessionID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
