package gridio

import (
	"os"

	"github.com/sirupsen/logrus"

	"ndvi-tools/ndvitools"
)

// WriteCellsCSV writes aggregated cell values as s2_id,value rows.
func WriteCellsCSV(cells []ndvitools.CellData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logrus.Error(err)
		}
	}()

	if _, err := f.WriteString("s2_id,value\n"); err != nil {
		return err
	}

	for i, cell := range cells {
		if i%10000 == 0 {
			logrus.Debugf("Writing cell %d of %d", i, len(cells))
		}
		if _, err := f.WriteString(cell.String() + "\n"); err != nil {
			return err
		}
	}
	return f.Sync()
}
