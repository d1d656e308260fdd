package snapshot

import (
	"fmt"
	"slices"

	"github.com/arloliu/scanjoin/compress"
	"github.com/arloliu/scanjoin/encoding"
	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/internal/hash"
	"github.com/arloliu/scanjoin/internal/options"
	"github.com/arloliu/scanjoin/internal/pool"
	"github.com/arloliu/scanjoin/section"
	"github.com/arloliu/scanjoin/table"
)

// Encode serializes a joined table into its snapshot form.
//
// The output is self-contained: header, column index and compressed body.
// Statistics blocks are not serialized.
//
// Parameters:
//   - t: The table to serialize.
//   - opts: Optional byte order and compression settings.
//
// Returns:
//   - []byte: The encoded snapshot, exclusively owned by the caller.
//   - error: Option validation or compression errors.
func Encode(t *table.JoinedTable, opts ...Option) ([]byte, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header := section.NewSnapshotHeader()
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.SetCompression(cfg.compression)
	header.ColumnCount = uint32(t.ColumnCount()) //nolint:gosec
	header.RowCount = uint32(t.RowCount())       //nolint:gosec

	metaData, err := encodeMetadata(t, cfg)
	if err != nil {
		return nil, err
	}

	refEncoder := encoding.NewPosRefDeltaEncoder()
	defer refEncoder.Finish()
	refEncoder.WriteSlice(t.PosRefs())

	valueBuf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(valueBuf)

	entries := make([]section.ColumnIndexEntry, 0, t.ColumnCount())
	for col := range t.ColumnCount() {
		entry, err := encodeColumn(valueBuf, t, col, cfg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	header.MetaOffset = 0
	header.PosRefOffset = uint32(len(metaData))                     //nolint:gosec
	header.ValueOffset = header.PosRefOffset + uint32(refEncoder.Size()) //nolint:gosec

	body := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(body)
	body.MustWrite(metaData)
	body.MustWrite(refEncoder.Bytes())
	body.MustWrite(valueBuf.Bytes())

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(body.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress snapshot body: %w", err)
	}

	out := make([]byte, 0, section.HeaderSize+len(entries)*section.ColumnIndexEntrySize+len(compressed))
	out = append(out, header.Bytes()...)
	for i := range entries {
		out = append(out, entries[i].Bytes(cfg.engine)...)
	}
	out = append(out, compressed...)

	return out, nil
}

// encodeMetadata serializes every column's descriptive record in column
// order: the five identity strings, the dimension and the attribute pairs.
func encodeMetadata(t *table.JoinedTable, cfg *encoderConfig) ([]byte, error) {
	enc := encoding.NewVarStringEncoder(cfg.engine)
	defer enc.Finish()

	for col := range t.ColumnCount() {
		meta, err := t.ColumnMeta(col)
		if err != nil {
			return nil, err
		}

		enc.Write(meta.Name)
		enc.Write(meta.Unit)
		enc.Write(meta.ID)
		enc.Write(meta.ChannelID)
		enc.Write(meta.NormalizeID)
		enc.WriteUvarint(uint64(meta.Dimension.Rows)) //nolint:gosec
		enc.WriteUvarint(uint64(meta.Dimension.Cols)) //nolint:gosec

		enc.WriteUvarint(uint64(meta.Attributes.Len())) //nolint:gosec
		for key, value := range meta.Attributes.All() {
			enc.Write(key)
			enc.Write(value)
		}
	}

	return slices.Clone(enc.Bytes()), nil
}

// encodeColumn appends one column's value block and cell-state block to the
// value section buffer and returns its index entry.
func encodeColumn(buf *pool.ByteBuffer, t *table.JoinedTable, col int, cfg *encoderConfig) (section.ColumnIndexEntry, error) {
	meta, err := t.ColumnMeta(col)
	if err != nil {
		return section.ColumnIndexEntry{}, err
	}
	width, err := t.ColumnWidth(col)
	if err != nil {
		return section.ColumnIndexEntry{}, err
	}
	dt, err := t.ColumnType(col)
	if err != nil {
		return section.ColumnIndexEntry{}, err
	}

	entry := section.ColumnIndexEntry{
		DeviceID:    hash.ID(metaLabel(meta)),
		DataType:    dt,
		DeviceType:  meta.Device,
		Width:       uint16(width),   //nolint:gosec
		ValueOffset: uint32(buf.Len()), //nolint:gosec
	}

	if err := encodeColumnValues(buf, t, col, dt, cfg); err != nil {
		return section.ColumnIndexEntry{}, err
	}

	entry.StateOffset = uint32(buf.Len()) //nolint:gosec
	states, err := t.ColumnStates(col)
	if err != nil {
		return section.ColumnIndexEntry{}, err
	}
	stateBytes := make([]byte, len(states))
	for i, s := range states {
		stateBytes[i] = byte(s)
	}
	buf.MustWrite(stateBytes)

	return entry, nil
}

func encodeColumnValues(buf *pool.ByteBuffer, t *table.JoinedTable, col int, dt format.DataType, cfg *encoderConfig) error {
	switch dt {
	case format.TypeString:
		values, err := table.Buffer[string](t, col)
		if err != nil {
			return err
		}
		enc := encoding.NewVarStringEncoder(cfg.engine)
		defer enc.Finish()
		enc.WriteSlice(values)
		buf.MustWrite(enc.Bytes())

		return nil
	case format.TypeInt8:
		return appendNumeric[int8](buf, t, col, cfg)
	case format.TypeInt16:
		return appendNumeric[int16](buf, t, col, cfg)
	case format.TypeInt32:
		return appendNumeric[int32](buf, t, col, cfg)
	case format.TypeInt64:
		return appendNumeric[int64](buf, t, col, cfg)
	case format.TypeUint8:
		return appendNumeric[uint8](buf, t, col, cfg)
	case format.TypeUint16:
		return appendNumeric[uint16](buf, t, col, cfg)
	case format.TypeUint32:
		return appendNumeric[uint32](buf, t, col, cfg)
	case format.TypeUint64:
		return appendNumeric[uint64](buf, t, col, cfg)
	case format.TypeFloat32:
		return appendNumeric[float32](buf, t, col, cfg)
	case format.TypeFloat64:
		return appendNumeric[float64](buf, t, col, cfg)
	default:
		return fmt.Errorf("%w: column %d has type %s", errs.ErrInvalidSnapshotData, col, dt)
	}
}

func appendNumeric[T encoding.Numeric](buf *pool.ByteBuffer, t *table.JoinedTable, col int, cfg *encoderConfig) error {
	values, err := table.Buffer[T](t, col)
	if err != nil {
		return err
	}

	enc := encoding.NewNumericRawEncoder[T](cfg.engine)
	defer enc.Finish()
	enc.WriteSlice(values)
	buf.MustWrite(enc.Bytes())

	return nil
}

// metaLabel mirrors the identity rule used by the join's column lookup:
// the XML id when present, otherwise the device name.
func metaLabel(meta *table.MetaRecord) string {
	if meta.ID != "" {
		return meta.ID
	}

	return meta.Name
}
