package session

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current wire format version for persisted session and
// flags records.
const SchemaVersion = 1

// ErrSchemaVersion reports a persisted record with an unknown version byte.
type ErrSchemaVersion struct {
	Got int
}

func (e *ErrSchemaVersion) Error() string {
	return fmt.Sprintf("unsupported session schema version %d", e.Got)
}

type sessionRecord struct {
	V       int      `json:"v"`
	Session *Session `json:"session"`
}

type flagsRecord struct {
	V     int         `json:"v"`
	Flags MethodFlags `json:"flags"`
}

// EncodeSession serializes s for the credential store. The session never
// carries a password secret, so the record is safe to persist as-is.
func EncodeSession(s *Session) ([]byte, error) {
	return json.Marshal(sessionRecord{V: SchemaVersion, Session: s})
}

// DecodeSession parses a persisted session record, rejecting unknown schema
// versions.
func DecodeSession(data []byte) (*Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.V != SchemaVersion {
		return nil, &ErrSchemaVersion{Got: rec.V}
	}
	return rec.Session, nil
}

// EncodeFlags serializes the factor flags for the credential store.
func EncodeFlags(f MethodFlags) ([]byte, error) {
	return json.Marshal(flagsRecord{V: SchemaVersion, Flags: f})
}

// DecodeFlags parses a persisted flags record, rejecting unknown schema
// versions.
func DecodeFlags(data []byte) (MethodFlags, error) {
	var rec flagsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return MethodFlags{}, err
	}
	if rec.V != SchemaVersion {
		return MethodFlags{}, &ErrSchemaVersion{Got: rec.V}
	}
	return rec.Flags, nil
}
