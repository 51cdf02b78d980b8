package recording

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

var csvHeader = []string{
	"SessionID", "Sequence", "InstanceLabel", "HookName", "IsCustomTrace", "Message",
}

// CSVWriter writes records as CSV rows, after a header row.
type CSVWriter struct {
	*buffer

	w           *csv.Writer
	closer      io.Closer
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer on w.
func NewCSVWriter(w io.Writer, sessionID string) *CSVWriter {
	c := &CSVWriter{w: csv.NewWriter(w)}
	c.buffer = newBuffer(sessionID, c.write)

	return c
}

// OpenCSVFile creates <path>.csv and a writer on it. An empty path picks a
// unique name. The file must not exist. It is flushed and closed at exit.
func OpenCSVFile(path, sessionID string) *CSVWriter {
	file := createFile(path, "hookscope_log_", ".csv")

	c := NewCSVWriter(file, sessionID)
	c.closer = file

	atexit.Register(func() {
		if err := c.Close(); err != nil {
			panic(err)
		}
	})

	return c
}

func (c *CSVWriter) write(records []Record) error {
	if !c.wroteHeader {
		if err := c.w.Write(csvHeader); err != nil {
			return err
		}

		c.wroteHeader = true
	}

	for _, r := range records {
		err := c.w.Write([]string{
			r.SessionID,
			strconv.FormatUint(r.Sequence, 10),
			r.InstanceLabel,
			r.HookName,
			strconv.FormatBool(r.IsCustomTrace),
			r.Message,
		})
		if err != nil {
			return err
		}
	}

	c.w.Flush()

	return c.w.Error()
}

// Close flushes the writer and closes the file it was opened on, if any.
func (c *CSVWriter) Close() error {
	err := c.Flush()

	if c.closer != nil {
		closeErr := c.closer.Close()
		c.closer = nil

		if err == nil {
			err = closeErr
		}
	}

	return err
}

// createFile creates prefix+xid+ext when path is empty and path+ext
// otherwise. It panics if the file exists or cannot be created.
func createFile(path, prefix, ext string) *os.File {
	if path == "" {
		path = prefix + xid.New().String()
	}

	filename := path + ext

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}

	return file
}
