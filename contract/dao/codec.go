package dao

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"unfair_dao/sdk"
)

// Record discriminators, the first byte of every stored account.
const (
	KindMember   byte = 0x04
	KindProposal byte = 0x10
	KindVote     byte = 0x20
)

var (
	ErrFieldTooLong   = errors.New("field too long")
	ErrUnexpectedEOF  = errors.New("unexpected EOF")
	ErrWrongKind      = errors.New("wrong record kind")
	ErrTrailingBytes  = errors.New("trailing bytes")
	ErrInvalidVarUint = errors.New("invalid varuint")
)

type binWriter struct {
	buf bytes.Buffer
	err error
}

func newWriter(kind byte) *binWriter {
	w := &binWriter{}
	w.buf.WriteByte(kind)
	return w
}

func (w *binWriter) result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

func (w *binWriter) writeByte(v byte) { w.buf.WriteByte(v) }

func (w *binWriter) writeUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *binWriter) writeUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *binWriter) writeInt64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeString keeps the first length error and never truncates.
func (w *binWriter) writeString(field string, s string, max int) {
	if len(s) > max {
		if w.err == nil {
			w.err = fmt.Errorf("%w: %s is %d bytes, max %d", ErrFieldTooLong, field, len(s), max)
		}
		return
	}
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *binWriter) writePubkey(k sdk.Pubkey) {
	w.buf.Write(k[:])
}

// EncodeMember serializes a member account.
func EncodeMember(m *Member) ([]byte, error) {
	w := newWriter(KindMember)
	w.writeByte(m.Bump)
	w.writeUint16(m.FairScore)
	w.writeUint16(m.SocialScore)
	w.writeUint16(m.WalletScore)
	w.writeByte(byte(m.Tier))
	w.writeString("username", m.Username, MaxUsernameLen)
	w.writeString("x_username", m.XUsername, MaxXUsernameLen)
	w.writePubkey(m.Wallet)
	return w.result()
}

// EncodeProposal serializes a proposal account.
func EncodeProposal(p *Proposal) ([]byte, error) {
	w := newWriter(KindProposal)
	w.writeByte(p.Bump)
	w.writeUint16(p.ScoreLimit)
	w.writeUint16(p.ScoreThreshold)
	w.writeUint32(p.VotesAgainst)
	w.writeUint32(p.VotesFor)
	w.writeUint32(p.Quorum)
	w.writeInt64(p.EndTime)
	w.writeByte(byte(p.Status))
	w.writeString("title", p.Title, MaxTitleLen)
	w.writeString("description", p.Description, MaxDescriptionLen)
	w.writePubkey(p.Author)
	return w.result()
}

// EncodeVote serializes a vote account.
func EncodeVote(v *Vote) ([]byte, error) {
	w := newWriter(KindVote)
	w.writeByte(v.Bump)
	w.writeUint16(v.Weight)
	w.writeByte(byte(v.Vote))
	w.writePubkey(v.Proposal)
	w.writePubkey(v.Member)
	return w.result()
}

// ------------------------------------------------------------------
// Decoder helpers
// ------------------------------------------------------------------

type binReader struct {
	data []byte
	pos  int
}

func newReader(data []byte, kind byte) (*binReader, error) {
	r := &binReader{data: data}
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if b != kind {
		return nil, fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrWrongKind, b, kind)
	}
	return r, nil
}

func (r *binReader) need(n int) error {
	if r.pos+n > len(r.data) {
		return ErrUnexpectedEOF
	}
	return nil
}

func (r *binReader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *binReader) readUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *binReader) readUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *binReader) readInt64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return int64(v), nil
}

func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, ErrInvalidVarUint
	}
	r.pos += n
	return val, nil
}

func (r *binReader) readString(field string, max int) (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if l > uint64(max) {
		return "", fmt.Errorf("%w: %s is %d bytes, max %d", ErrFieldTooLong, field, l, max)
	}
	if err := r.need(int(l)); err != nil {
		return "", err
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

func (r *binReader) readPubkey() (sdk.Pubkey, error) {
	var k sdk.Pubkey
	if err := r.need(sdk.PubkeyLength); err != nil {
		return k, err
	}
	copy(k[:], r.data[r.pos:])
	r.pos += sdk.PubkeyLength
	return k, nil
}

func (r *binReader) done() error {
	if r.pos != len(r.data) {
		return fmt.Errorf("%w: %d", ErrTrailingBytes, len(r.data)-r.pos)
	}
	return nil
}

// DecodeMember reads a member account written by EncodeMember.
func DecodeMember(data []byte) (*Member, error) {
	r, err := newReader(data, KindMember)
	if err != nil {
		return nil, err
	}
	var m Member
	if m.Bump, err = r.readByte(); err != nil {
		return nil, err
	}
	if m.FairScore, err = r.readUint16(); err != nil {
		return nil, err
	}
	if m.SocialScore, err = r.readUint16(); err != nil {
		return nil, err
	}
	if m.WalletScore, err = r.readUint16(); err != nil {
		return nil, err
	}
	tier, err := r.readByte()
	if err != nil {
		return nil, err
	}
	m.Tier = Tier(tier)
	if !m.Tier.Valid() {
		return nil, fmt.Errorf("invalid tier %d", tier)
	}
	if m.Username, err = r.readString("username", MaxUsernameLen); err != nil {
		return nil, err
	}
	if m.XUsername, err = r.readString("x_username", MaxXUsernameLen); err != nil {
		return nil, err
	}
	if m.Wallet, err = r.readPubkey(); err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeProposal reads a proposal account written by EncodeProposal.
func DecodeProposal(data []byte) (*Proposal, error) {
	r, err := newReader(data, KindProposal)
	if err != nil {
		return nil, err
	}
	var p Proposal
	if p.Bump, err = r.readByte(); err != nil {
		return nil, err
	}
	if p.ScoreLimit, err = r.readUint16(); err != nil {
		return nil, err
	}
	if p.ScoreThreshold, err = r.readUint16(); err != nil {
		return nil, err
	}
	if p.VotesAgainst, err = r.readUint32(); err != nil {
		return nil, err
	}
	if p.VotesFor, err = r.readUint32(); err != nil {
		return nil, err
	}
	if p.Quorum, err = r.readUint32(); err != nil {
		return nil, err
	}
	if p.EndTime, err = r.readInt64(); err != nil {
		return nil, err
	}
	status, err := r.readByte()
	if err != nil {
		return nil, err
	}
	p.Status = ProposalStatus(status)
	if !p.Status.Valid() {
		return nil, fmt.Errorf("invalid proposal status %d", status)
	}
	if p.Title, err = r.readString("title", MaxTitleLen); err != nil {
		return nil, err
	}
	if p.Description, err = r.readString("description", MaxDescriptionLen); err != nil {
		return nil, err
	}
	if p.Author, err = r.readPubkey(); err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeVote reads a vote account written by EncodeVote.
func DecodeVote(data []byte) (*Vote, error) {
	r, err := newReader(data, KindVote)
	if err != nil {
		return nil, err
	}
	var v Vote
	if v.Bump, err = r.readByte(); err != nil {
		return nil, err
	}
	if v.Weight, err = r.readUint16(); err != nil {
		return nil, err
	}
	choice, err := r.readByte()
	if err != nil {
		return nil, err
	}
	v.Vote = VoteChoice(choice)
	if !v.Vote.Valid() {
		return nil, fmt.Errorf("invalid vote choice %d", choice)
	}
	if v.Proposal, err = r.readPubkey(); err != nil {
		return nil, err
	}
	if v.Member, err = r.readPubkey(); err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return &v, nil
}
