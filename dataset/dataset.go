// Package dataset loads the labelled feature table plotted by pcaplot.
//
// The input is a comma-separated file without a header row. Every record has
// exactly NumColumns fields: NumFeatures numeric features followed by an
// integer class label.
//
//	5.100000, 3.500000, 1.400000, 0.200000, 0
//	7.000000, 3.200000, 4.700000, 1.400000, 1
//
// Loading is all-or-nothing: the first malformed record aborts with a
// ParseError and no Dataset is returned.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

const (
	// NumFeatures is the number of leading numeric columns.
	NumFeatures = 4
	// NumColumns is the total number of fields per record.
	NumColumns = NumFeatures + 1
	// LabelColumn is the index of the class label field.
	LabelColumn = NumFeatures
	// DefaultPath is the input read when no path is configured.
	DefaultPath = "./result_dogs"
)

// Dataset is an immutable table of records loaded from a delimited file.
type Dataset struct {
	features *mat.Dense
	labels   []int
}

// Load reads the dataset at path.
func Load(path string) (*Dataset, error) {
	logger := log.GetLoggerWithName("dataset")
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer func() { _ = f.Close() }()

	ds, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dataset %s", path)
	}

	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, NumFeatures,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return ds, nil
}

// Read parses a dataset from r.
func Read(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = NumColumns
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var (
		data   []float64
		labels []int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "malformed record")
		}
		line, _ := reader.FieldPos(0)

		for j := 0; j < NumFeatures; j++ {
			v, err := parseFeature(record[j])
			if err != nil {
				return nil, errors.NewParseError(line, j, record[j], err)
			}
			data = append(data, v)
		}

		label, err := parseLabel(record[LabelColumn])
		if err != nil {
			return nil, errors.NewParseError(line, LabelColumn, record[LabelColumn], err)
		}
		labels = append(labels, label)
	}

	if len(labels) == 0 {
		return nil, errors.NewModelError("dataset.Read", "no records", errors.ErrEmptyData)
	}

	return &Dataset{
		features: mat.NewDense(len(labels), NumFeatures, data),
		labels:   labels,
	}, nil
}

// FromRecords builds a dataset from in-memory rows of NumColumns values.
// The last value of each row must be an integral label.
func FromRecords(rows [][]float64) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.NewModelError("dataset.FromRecords", "no records", errors.ErrEmptyData)
	}
	data := make([]float64, 0, len(rows)*NumFeatures)
	labels := make([]int, len(rows))
	for i, row := range rows {
		if len(row) != NumColumns {
			return nil, errors.NewDimensionError("dataset.FromRecords", NumColumns, len(row), 1)
		}
		for j := 0; j < NumFeatures; j++ {
			if math.IsNaN(row[j]) || math.IsInf(row[j], 0) {
				return nil, errors.NewValueError("dataset.FromRecords",
					fmt.Sprintf("row %d, column %d is not finite", i, j))
			}
		}
		data = append(data, row[:NumFeatures]...)
		label := row[LabelColumn]
		if label != math.Trunc(label) || math.IsInf(label, 0) || math.Abs(label) > math.MaxInt32 {
			return nil, errors.NewValueError("dataset.FromRecords",
				fmt.Sprintf("row %d label %v is not an integer", i, label))
		}
		labels[i] = int(label)
	}
	return &Dataset{
		features: mat.NewDense(len(rows), NumFeatures, data),
		labels:   labels,
	}, nil
}

// New builds a dataset from a feature matrix (n × NumFeatures) and one
// label per row. Both are copied.
func New(features mat.Matrix, labels []int) (*Dataset, error) {
	r, c := features.Dims()
	if r == 0 {
		return nil, errors.NewModelError("dataset.New", "no records", errors.ErrEmptyData)
	}
	if c != NumFeatures {
		return nil, errors.NewDimensionError("dataset.New", NumFeatures, c, 1)
	}
	if len(labels) != r {
		return nil, errors.NewDimensionError("dataset.New", r, len(labels), 0)
	}
	return &Dataset{
		features: mat.DenseCopyOf(features),
		labels:   append([]int(nil), labels...),
	}, nil
}

// Write encodes the dataset in the format Read accepts, one record per
// line with features as "%f, " followed by the label:
//
//	5.100000, 3.500000, 1.400000, 0.200000, 0
func (d *Dataset) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	row := make([]float64, NumFeatures)
	for i, label := range d.labels {
		mat.Row(row, i, d.features)
		for _, v := range row {
			if _, err := fmt.Fprintf(bw, "%f, ", v); err != nil {
				return errors.Wrapf(err, "failed to write record %d", i)
			}
		}
		if _, err := fmt.Fprintf(bw, "%d\n", label); err != nil {
			return errors.Wrapf(err, "failed to write record %d", i)
		}
	}
	return errors.Wrap(bw.Flush(), "failed to flush dataset")
}

func parseFeature(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Newf("non-finite value %v", v)
	}
	return v, nil
}

// parseLabel accepts integer literals and integral floats such as "1.0".
func parseLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, errors.Newf("label %v is not an integer", f)
	}
	return int(f), nil
}

// Dims returns the table shape: Len() rows by NumColumns columns.
func (d *Dataset) Dims() (rows, cols int) {
	return len(d.labels), NumColumns
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.labels)
}

// Row returns a copy of record i, with the label as its last value.
func (d *Dataset) Row(i int) []float64 {
	row := make([]float64, NumColumns)
	mat.Row(row[:NumFeatures], i, d.features)
	row[LabelColumn] = float64(d.labels[i])
	return row
}

// Label returns the class label of record i.
func (d *Dataset) Label(i int) int {
	return d.labels[i]
}

// Split separates the feature columns from the label column. Row i of the
// returned matrix and element i of the label slice belong to record i. Both
// are copies.
func (d *Dataset) Split() (*mat.Dense, []int) {
	features := mat.DenseCopyOf(d.features)
	labels := make([]int, len(d.labels))
	copy(labels, d.labels)
	return features, labels
}

// Classes returns the number of records per label.
func (d *Dataset) Classes() map[int]int {
	counts := make(map[int]int)
	for _, l := range d.labels {
		counts[l]++
	}
	return counts
}
