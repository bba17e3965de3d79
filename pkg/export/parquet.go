package export

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"github.com/caseflow/caseflow/internal/model"
)

// activitySchema is the flat activity table: one row per event inside a
// finalized case. Timestamps are unix milliseconds.
func activitySchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "case_id", Type: arrow.PrimitiveTypes.Int64, Nullable: false},
		{Name: "entity_id", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "event_type", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "timestamp", Type: arrow.PrimitiveTypes.Int64, Nullable: false},
		{Name: "source_table", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "source_row", Type: arrow.PrimitiveTypes.Int64, Nullable: false},
	}, nil)
}

// WriteParquet writes the activity table for all case details to path.
func WriteParquet(path string, details []model.CaseDetail) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create parquet file: %w", err)
	}
	defer f.Close()

	schema := activitySchema()
	writerProps := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithDictionaryDefault(true),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(schema, f, writerProps, arrowProps)
	if err != nil {
		return fmt.Errorf("export: create parquet writer: %w", err)
	}

	allocator := memory.NewGoAllocator()
	caseIDs := array.NewInt64Builder(allocator)
	entityIDs := array.NewStringBuilder(allocator)
	eventTypes := array.NewStringBuilder(allocator)
	timestamps := array.NewInt64Builder(allocator)
	sourceTables := array.NewStringBuilder(allocator)
	sourceRows := array.NewInt64Builder(allocator)
	defer caseIDs.Release()
	defer entityIDs.Release()
	defer eventTypes.Release()
	defer timestamps.Release()
	defer sourceTables.Release()
	defer sourceRows.Release()

	rows := 0
	for _, d := range details {
		for _, a := range d.Activities {
			caseIDs.Append(int64(d.CaseID))
			entityIDs.Append(d.EntityID)
			eventTypes.Append(a.EventType)
			timestamps.Append(a.Timestamp.UnixMilli())
			sourceTables.Append(a.Source.Table)
			sourceRows.Append(int64(a.Source.Row))
			rows++
		}
	}

	cols := []arrow.Array{
		caseIDs.NewArray(),
		entityIDs.NewArray(),
		eventTypes.NewArray(),
		timestamps.NewArray(),
		sourceTables.NewArray(),
		sourceRows.NewArray(),
	}
	for _, col := range cols {
		defer col.Release()
	}

	record := array.NewRecord(schema, cols, int64(rows))
	defer record.Release()

	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("export: write parquet record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("export: close parquet writer: %w", err)
	}
	return nil
}
