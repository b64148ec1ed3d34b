package identity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ProcessIdentity places one spawned worker invocation within a distributed
// query plan: the slice it executes, its ordinal position in the gang
// cooperating on that slice, and whether it is the gang's single writer.
//
// A ProcessIdentity starts uninitialized and is populated exactly once, by
// decoding the token the launching process handed over. Fields are only
// meaningful while Initialized is true.
type ProcessIdentity struct {
	Initialized   bool
	SliceID       int
	IDInSlice     int
	GangMemberNum int
	CommandCount  int
	IsWriter      bool
}

// Token grammar. The literals and their order are fixed, the token is also
// parsed by spawned workers of older releases, so treat the grammar as a
// compatibility contract.
const (
	tokenBegin  = "ProcessIdentity_Begin_"
	tokenEnd    = "End_ProcessIdentity"
	tokenSlice  = "slice_"
	tokenIdx    = "idx_"
	tokenGang   = "gang_"
	tokenCmd    = "cmd_"
	tokenWriter = "writer_"
	tokenSep    = byte('_')
)

var ErrInvalidToken = errors.New("invalid process identity token")

// Encode renders the identity as a launch token. The second return value is
// false when the identity is uninitialized, there is nothing to transmit
// and the caller must not use the string.
func (p ProcessIdentity) Encode() (string, bool) {
	if !p.Initialized {
		return "", false
	}
	var b strings.Builder
	b.WriteString(tokenBegin)
	b.WriteString(tokenSlice)
	b.WriteString(strconv.Itoa(p.SliceID))
	b.WriteByte(tokenSep)
	b.WriteString(tokenIdx)
	b.WriteString(strconv.Itoa(p.IDInSlice))
	b.WriteByte(tokenSep)
	b.WriteString(tokenGang)
	b.WriteString(strconv.Itoa(p.GangMemberNum))
	b.WriteByte(tokenSep)
	b.WriteString(tokenCmd)
	b.WriteString(strconv.Itoa(p.CommandCount))
	b.WriteByte(tokenSep)
	b.WriteString(tokenWriter)
	if p.IsWriter {
		b.WriteString("t")
	} else {
		b.WriteString("f")
	}
	b.WriteByte(tokenSep)
	b.WriteString(tokenEnd)
	return b.String(), true
}

// Decode parses a launch token produced by Encode. On any failure the
// receiver is marked uninitialized and no field is assigned; on success all
// fields are assigned together and Initialized becomes true. Trailing data
// after the end literal is rejected, the token travels alone in its
// transport slot and anything after it means the launch was corrupted.
func (p *ProcessIdentity) Decode(token string) error {
	p.Initialized = false

	sc := tokenScanner{rest: token}
	if err := sc.literal(tokenBegin); err != nil {
		return err
	}
	if err := sc.literal(tokenSlice); err != nil {
		return err
	}
	sliceID, err := sc.signedInt()
	if err != nil {
		return err
	}
	if err := sc.literal(tokenIdx); err != nil {
		return err
	}
	idInSlice, err := sc.signedInt()
	if err != nil {
		return err
	}
	if err := sc.literal(tokenGang); err != nil {
		return err
	}
	gangMemberNum, err := sc.signedInt()
	if err != nil {
		return err
	}
	if err := sc.literal(tokenCmd); err != nil {
		return err
	}
	commandCount, err := sc.signedInt()
	if err != nil {
		return err
	}
	if err := sc.literal(tokenWriter); err != nil {
		return err
	}
	isWriter, err := sc.writerFlag()
	if err != nil {
		return err
	}
	if err := sc.literal(tokenEnd); err != nil {
		return err
	}
	if sc.rest != "" {
		return errors.Wrapf(ErrInvalidToken, "trailing data %q after end literal", sc.rest)
	}

	p.SliceID = sliceID
	p.IDInSlice = idInSlice
	p.GangMemberNum = gangMemberNum
	p.CommandCount = commandCount
	p.IsWriter = isWriter
	p.Initialized = true
	return nil
}

func (p ProcessIdentity) String() string {
	if !p.Initialized {
		return "ProcessIdentity(uninitialized)"
	}
	return fmt.Sprintf("ProcessIdentity(slice=%d idx=%d gang=%d cmd=%d writer=%t)",
		p.SliceID, p.IDInSlice, p.GangMemberNum, p.CommandCount, p.IsWriter)
}

// tokenScanner consumes the token front to back, one grammar element at a
// time.
type tokenScanner struct {
	rest string
}

func (s *tokenScanner) literal(lit string) error {
	if !strings.HasPrefix(s.rest, lit) {
		return errors.Wrapf(ErrInvalidToken, "expected literal %q at %q", lit, s.rest)
	}
	s.rest = s.rest[len(lit):]
	return nil
}

// signedInt reads a signed decimal integer up to the next separator and
// consumes the separator.
func (s *tokenScanner) signedInt() (int, error) {
	i := strings.IndexByte(s.rest, tokenSep)
	if i < 0 {
		return 0, errors.Wrapf(ErrInvalidToken, "integer field missing separator at %q", s.rest)
	}
	v, err := strconv.Atoi(s.rest[:i])
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidToken, "bad integer field %q", s.rest[:i])
	}
	s.rest = s.rest[i+1:]
	return v, nil
}

// writerFlag reads the literal "t" or "f" up to the next separator and
// consumes the separator.
func (s *tokenScanner) writerFlag() (bool, error) {
	i := strings.IndexByte(s.rest, tokenSep)
	if i < 0 {
		return false, errors.Wrapf(ErrInvalidToken, "writer field missing separator at %q", s.rest)
	}
	field := s.rest[:i]
	s.rest = s.rest[i+1:]
	switch field {
	case "t":
		return true, nil
	case "f":
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidToken, "writer field must be t or f, got %q", field)
}
