package bubbles

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// UnknownCell is written for a marker which has not been resolved in a frame
const UnknownCell = "( - , - )"

func formatPosition(x, y int) string {
	return fmt.Sprintf("(%d, %d)", x, y)
}

// Position is a marker's resolved position in a frame
type Position struct {
	X        int
	Y        int
	Resolved bool
}

// Record is a single frame of history
type Record struct {
	FrameNo   int
	positions map[int]Position
}

// Position returns position of the marker. Second value is false when marker has not been recorded for the frame.
func (record *Record) Position(markerNo int) (Position, bool) {
	pos, ok := record.positions[markerNo]
	return pos, ok
}

// Cell returns formatted position of the marker
func (record *Record) Cell(markerNo int) string {
	pos, ok := record.positions[markerNo]
	if !ok || !pos.Resolved {
		return UnknownCell
	}
	return formatPosition(pos.X, pos.Y)
}

// History accumulates one record per processed frame
type History struct {
	markers []int
	records []*Record
}

// NewHistory creates history with columns for given marker numbers
func NewHistory(markers []int) *History {
	columns := make([]int, len(markers))
	copy(columns, markers)
	return &History{
		markers: columns,
		records: make([]*Record, 0),
	}
}

// Add records marker's circle (nil for unknown) in the frame.
// A new record is started when frameNo differs from the current one.
func (history *History) Add(frameNo, markerNo int, circle *Circle) {
	var record *Record
	if n := len(history.records); n > 0 && history.records[n-1].FrameNo == frameNo {
		record = history.records[n-1]
	} else {
		record = &Record{FrameNo: frameNo, positions: make(map[int]Position)}
		history.records = append(history.records, record)
	}
	pos := Position{}
	if circle != nil {
		pos = Position{X: circle.X, Y: circle.Y, Resolved: true}
	}
	record.positions[markerNo] = pos
}

// Records returns recorded frames in order
func (history *History) Records() []*Record {
	return history.records
}

// Markers returns marker numbers in column order
func (history *History) Markers() []int {
	return history.markers
}

// Len returns number of recorded frames
func (history *History) Len() int {
	return len(history.records)
}

// Header returns column names of the position log
func (history *History) Header() []string {
	header := make([]string, 0, len(history.markers)+1)
	header = append(header, "Frame")
	for _, n := range history.markers {
		header = append(header, "Bubble_"+strconv.Itoa(n))
	}
	return header
}

// WriteTSV writes header and one tab separated row per frame
func (history *History) WriteTSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	if err := writer.Write(history.Header()); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	row := make([]string, len(history.markers)+1)
	for _, record := range history.records {
		row[0] = strconv.Itoa(record.FrameNo)
		for i, n := range history.markers {
			row[i+1] = record.Cell(n)
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "Can't write frame %d", record.FrameNo)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush position log")
}
