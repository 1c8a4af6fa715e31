// Package roundlog writes and reads a stream of resolved rounds.
// Each round is encoded as a protobuf Struct message, prefixed by its length.
package roundlog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/relab/majority"
)

// maxRecordSize bounds the length prefix accepted by the Reader.
const maxRecordSize = 64 << 20

// Count is the number of proposals for one value.
type Count struct {
	Value string
	Count int
}

// Record is the logged form of a resolved round. Values are formatted with fmt.Sprint.
type Record struct {
	Round uint64
	Value string
	Tied  bool
	// Tally lists the counts in the order the values first appeared.
	Tally []Count
	// Proposals holds the value proposed by each proposer, indexed by proposer ID.
	Proposals []string
}

// FromResult converts a result to a record.
func FromResult[T comparable](r majority.Result[T]) Record {
	rec := Record{
		Round: r.Round,
		Value: fmt.Sprint(r.Value),
		Tied:  r.Tied(),
	}
	for _, v := range r.Tally.Values() {
		rec.Tally = append(rec.Tally, Count{Value: fmt.Sprint(v), Count: r.Tally.Count(v)})
	}
	for _, p := range r.Proposals {
		rec.Proposals = append(rec.Proposals, fmt.Sprint(p.Value))
	}
	return rec
}

// toProto stores the round as a decimal string; structpb numbers are float64 and do not hold every uint64.
func (rec Record) toProto() *structpb.Struct {
	tally := make([]*structpb.Value, len(rec.Tally))
	for i, c := range rec.Tally {
		tally[i] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"value": structpb.NewStringValue(c.Value),
			"count": structpb.NewNumberValue(float64(c.Count)),
		}})
	}
	proposals := make([]*structpb.Value, len(rec.Proposals))
	for i, p := range rec.Proposals {
		proposals[i] = structpb.NewStringValue(p)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"round":     structpb.NewStringValue(strconv.FormatUint(rec.Round, 10)),
		"value":     structpb.NewStringValue(rec.Value),
		"tied":      structpb.NewBoolValue(rec.Tied),
		"tally":     structpb.NewListValue(&structpb.ListValue{Values: tally}),
		"proposals": structpb.NewListValue(&structpb.ListValue{Values: proposals}),
	}}
}

// ErrMalformedRecord is the error used when a message does not hold a round record.
var ErrMalformedRecord = errors.New("roundlog: malformed record")

func fromProto(s *structpb.Struct) (rec Record, err error) {
	fields := s.GetFields()
	for _, name := range []string{"round", "value", "tied", "tally", "proposals"} {
		if _, ok := fields[name]; !ok {
			return rec, fmt.Errorf("%w: missing field %s", ErrMalformedRecord, name)
		}
	}
	if rec.Round, err = strconv.ParseUint(fields["round"].GetStringValue(), 10, 64); err != nil {
		return rec, fmt.Errorf("%w: round: %v", ErrMalformedRecord, err)
	}
	rec.Value = fields["value"].GetStringValue()
	rec.Tied = fields["tied"].GetBoolValue()
	for _, v := range fields["tally"].GetListValue().GetValues() {
		entry := v.GetStructValue().GetFields()
		if entry == nil {
			return rec, fmt.Errorf("%w: tally entry is not a struct", ErrMalformedRecord)
		}
		rec.Tally = append(rec.Tally, Count{
			Value: entry["value"].GetStringValue(),
			Count: int(entry["count"].GetNumberValue()),
		})
	}
	for _, v := range fields["proposals"].GetListValue().GetValues() {
		rec.Proposals = append(rec.Proposals, v.GetStringValue())
	}
	return rec, nil
}

// Writer writes records to an io.Writer. It is safe for concurrent use.
type Writer struct {
	mut       sync.Mutex
	dest      io.Writer
	marshaler proto.MarshalOptions
}

// NewWriter returns a new Writer that writes to dest.
func NewWriter(dest io.Writer) *Writer {
	return &Writer{
		dest:      dest,
		marshaler: proto.MarshalOptions{Deterministic: true},
	}
}

// Write writes one record to the stream.
func (w *Writer) Write(rec Record) error {
	buf, err := w.marshaler.Marshal(rec.toProto())
	if err != nil {
		return fmt.Errorf("roundlog: failed to marshal record: %w", err)
	}

	var msgLen [4]byte
	binary.LittleEndian.PutUint32(msgLen[:], uint32(len(buf)))

	w.mut.Lock()
	defer w.mut.Unlock()

	if _, err = w.dest.Write(msgLen[:]); err != nil {
		return fmt.Errorf("roundlog: failed to write record length: %w", err)
	}
	if _, err = w.dest.Write(buf); err != nil {
		return fmt.Errorf("roundlog: failed to write record: %w", err)
	}
	return nil
}

// Reader reads records from an io.Reader.
type Reader struct {
	mut         sync.Mutex
	src         io.Reader
	unmarshaler proto.UnmarshalOptions
}

// NewReader returns a new Reader that reads from src.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:         src,
		unmarshaler: proto.UnmarshalOptions{},
	}
}

// Read reads the next record. It returns io.EOF when the stream ends cleanly between records.
func (r *Reader) Read() (rec Record, err error) {
	r.mut.Lock()
	defer r.mut.Unlock()

	var msgLenBuf [4]byte
	if _, err = io.ReadFull(r.src, msgLenBuf[:]); err != nil {
		if err == io.EOF {
			return rec, io.EOF
		}
		return rec, fmt.Errorf("roundlog: failed to read record length: %w", err)
	}

	msgLen := binary.LittleEndian.Uint32(msgLenBuf[:])
	if msgLen > maxRecordSize {
		return rec, fmt.Errorf("roundlog: record length %d exceeds %d bytes", msgLen, maxRecordSize)
	}

	buf := make([]byte, msgLen)
	if _, err = io.ReadFull(r.src, buf); err != nil {
		return rec, fmt.Errorf("roundlog: failed to read record: %w", err)
	}

	var msg structpb.Struct
	if err = r.unmarshaler.Unmarshal(buf, &msg); err != nil {
		return rec, fmt.Errorf("roundlog: failed to unmarshal record: %w", err)
	}
	return fromProto(&msg)
}

// ReadAll reads records until the end of the stream.
func ReadAll(src io.Reader) ([]Record, error) {
	reader := NewReader(src)
	var records []Record
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
