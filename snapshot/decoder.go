package snapshot

import (
	"fmt"

	"github.com/arloliu/scanjoin/compress"
	"github.com/arloliu/scanjoin/encoding"
	"github.com/arloliu/scanjoin/endian"
	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/section"
	"github.com/arloliu/scanjoin/table"
)

// Decode reconstructs a joined table from its snapshot form.
//
// The input must be a complete snapshot as produced by Encode; endianness and
// compression codec are taken from the header. Decoded tables carry values,
// cell states and metadata; statistics blocks are never present.
//
// Returns:
//   - *table.JoinedTable: The reconstructed table, exclusively owned by the caller.
//   - error: Header, payload or decompression errors.
func Decode(data []byte) (*table.JoinedTable, error) {
	header, err := section.ParseSnapshotHeader(data)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	colCount := int(header.ColumnCount)
	rowCount := int(header.RowCount)

	indexEnd := section.HeaderSize + colCount*section.ColumnIndexEntrySize
	if indexEnd > len(data) {
		return nil, fmt.Errorf("%w: %d columns exceed snapshot size", errs.ErrInvalidColumnCount, colCount)
	}

	entries := make([]section.ColumnIndexEntry, 0, colCount)
	for i := range colCount {
		off := section.HeaderSize + i*section.ColumnIndexEntrySize
		entry, err := section.ParseColumnIndexEntry(data[off:off+section.ColumnIndexEntrySize], engine)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}
	body, err := codec.Decompress(data[indexEnd:])
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot body: %w", err)
	}

	if header.MetaOffset > header.PosRefOffset || header.PosRefOffset > header.ValueOffset ||
		int(header.ValueOffset) > len(body) {
		return nil, fmt.Errorf("%w: body offsets out of order", errs.ErrInvalidPayloadOffset)
	}

	metas, err := decodeMetadata(body[header.MetaOffset:header.PosRefOffset], entries, engine)
	if err != nil {
		return nil, err
	}

	posRefs, ok := encoding.NewPosRefDeltaDecoder().
		DecodeSlice(body[header.PosRefOffset:header.ValueOffset], rowCount)
	if !ok {
		return nil, fmt.Errorf("%w: truncated position reference section", errs.ErrInvalidSnapshotData)
	}

	valueSection := body[header.ValueOffset:]
	cols := make([]*table.BuiltColumn, 0, colCount)
	for i, entry := range entries {
		col, err := decodeColumn(valueSection, entry, metas[i], rowCount, engine)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		cols = append(cols, col)
	}

	return table.NewTable(posRefs, cols)
}

// decodeMetadata reads one descriptive record per column, in column order.
// Device and data type tags come from the index entries.
func decodeMetadata(data []byte, entries []section.ColumnIndexEntry, engine endian.EndianEngine) ([]*table.MetaRecord, error) {
	dec := encoding.NewVarStringDecoder(engine)
	metas := make([]*table.MetaRecord, 0, len(entries))
	pos := 0

	readString := func(dst *string, ok *bool) {
		if !*ok {
			return
		}
		var s string
		s, pos, *ok = dec.ReadString(data, pos)
		*dst = s
	}

	for _, entry := range entries {
		meta := &table.MetaRecord{
			Device: entry.DeviceType,
			Type:   entry.DataType,
		}

		ok := true
		readString(&meta.Name, &ok)
		readString(&meta.Unit, &ok)
		readString(&meta.ID, &ok)
		readString(&meta.ChannelID, &ok)
		readString(&meta.NormalizeID, &ok)

		var rows, cols, attrCount uint64
		if ok {
			rows, pos, ok = dec.ReadUvarint(data, pos)
		}
		if ok {
			cols, pos, ok = dec.ReadUvarint(data, pos)
		}
		if ok {
			attrCount, pos, ok = dec.ReadUvarint(data, pos)
		}
		if !ok {
			return nil, fmt.Errorf("%w: truncated metadata section", errs.ErrInvalidSnapshotData)
		}
		meta.Dimension = table.Dimension{Rows: int(rows), Cols: int(cols)} //nolint:gosec

		if attrCount > 0 {
			attrs := table.NewAttributes()
			for range attrCount {
				var key, value string
				readString(&key, &ok)
				readString(&value, &ok)
				if !ok {
					return nil, fmt.Errorf("%w: truncated attribute pair", errs.ErrInvalidSnapshotData)
				}
				attrs.Add(key, value)
			}
			meta.Attributes = attrs
		}

		metas = append(metas, meta)
	}

	return metas, nil
}

// decodeColumn reconstructs one column's dense value buffer and cell states
// from the value section.
func decodeColumn(valueSection []byte, entry section.ColumnIndexEntry, meta *table.MetaRecord, rows int, engine endian.EndianEngine) (*table.BuiltColumn, error) {
	width := int(entry.Width)
	count := rows * width

	valueOff := int(entry.ValueOffset)
	stateOff := int(entry.StateOffset)
	if valueOff > stateOff || stateOff+rows > len(valueSection) {
		return nil, errs.ErrInvalidPayloadOffset
	}

	states := make([]table.CellState, rows)
	for i, b := range valueSection[stateOff : stateOff+rows] {
		state := table.CellState(b)
		if state > table.CellFilled {
			return nil, fmt.Errorf("%w: cell state 0x%02X", errs.ErrInvalidSnapshotData, b)
		}
		states[i] = state
	}

	valueData := valueSection[valueOff:stateOff]

	switch entry.DataType {
	case format.TypeString:
		dec := encoding.NewVarStringDecoder(engine)
		values := make([]string, 0, count)
		for s := range dec.All(valueData, count) {
			values = append(values, s)
		}
		if len(values) != count {
			return nil, fmt.Errorf("%w: truncated string value block", errs.ErrInvalidSnapshotData)
		}

		return table.NewBuiltColumn(meta, width, values, states)
	case format.TypeInt8:
		return buildNumeric[int8](valueData, count, meta, width, states, engine)
	case format.TypeInt16:
		return buildNumeric[int16](valueData, count, meta, width, states, engine)
	case format.TypeInt32:
		return buildNumeric[int32](valueData, count, meta, width, states, engine)
	case format.TypeInt64:
		return buildNumeric[int64](valueData, count, meta, width, states, engine)
	case format.TypeUint8:
		return buildNumeric[uint8](valueData, count, meta, width, states, engine)
	case format.TypeUint16:
		return buildNumeric[uint16](valueData, count, meta, width, states, engine)
	case format.TypeUint32:
		return buildNumeric[uint32](valueData, count, meta, width, states, engine)
	case format.TypeUint64:
		return buildNumeric[uint64](valueData, count, meta, width, states, engine)
	case format.TypeFloat32:
		return buildNumeric[float32](valueData, count, meta, width, states, engine)
	case format.TypeFloat64:
		return buildNumeric[float64](valueData, count, meta, width, states, engine)
	default:
		return nil, fmt.Errorf("%w: data type %s", errs.ErrInvalidSnapshotData, entry.DataType)
	}
}

func buildNumeric[T encoding.Numeric](data []byte, count int, meta *table.MetaRecord, width int, states []table.CellState, engine endian.EndianEngine) (*table.BuiltColumn, error) {
	values, ok := encoding.NewNumericRawDecoder[T](engine).DecodeSlice(data, count)
	if !ok {
		return nil, fmt.Errorf("%w: truncated value block", errs.ErrInvalidSnapshotData)
	}

	return table.NewBuiltColumn(meta, width, values, states)
}
