package gridio

import (
	"errors"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/sirupsen/logrus"

	"ndvi-tools/ndvitools"
)

// CellRow is the parquet schema for one aggregated S2 cell.
type CellRow struct {
	S2id  int64   `parquet:"s2_id, type=INT64"`
	Value float64 `parquet:"value, type=DOUBLE"`
}

// WriteCellsParquet writes aggregated cell values as a snappy-compressed
// parquet file.
func WriteCellsParquet(cells []ndvitools.CellData, path string) (err error) {
	output, err := os.Create(path)
	if err != nil {
		return err
	}

	schema := parquet.SchemaOf(new(CellRow))
	writer := parquet.NewGenericWriter[CellRow](output, schema, parquet.Compression(&parquet.Snappy))
	defer func() {
		// writer.Close writes the parquet footer, its error is a write error
		err = errors.Join(err, writer.Close(), output.Close())
	}()

	rows := make([]CellRow, len(cells))
	for i, cell := range cells {
		rows[i] = CellRow{S2id: int64(cell.Cell), Value: cell.Value}
	}
	logrus.Debugf("Writing %d cells to %s", len(rows), path)
	if _, err := writer.Write(rows); err != nil {
		return err
	}
	return nil
}
