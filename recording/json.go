package recording

import (
	"encoding/json"
	"io"

	"github.com/tebeka/atexit"
)

// JSONWriter writes one JSON object per record and line.
type JSONWriter struct {
	*buffer

	enc    *json.Encoder
	closer io.Closer
}

// NewJSONWriter creates a JSON lines writer on w.
func NewJSONWriter(w io.Writer, sessionID string) *JSONWriter {
	j := &JSONWriter{enc: json.NewEncoder(w)}
	j.buffer = newBuffer(sessionID, j.write)

	return j
}

// OpenJSONFile creates <path>.jsonl and a writer on it. An empty path picks
// a unique name. The file must not exist. It is flushed and closed at exit.
func OpenJSONFile(path, sessionID string) *JSONWriter {
	file := createFile(path, "hookscope_log_", ".jsonl")

	j := NewJSONWriter(file, sessionID)
	j.closer = file

	atexit.Register(func() {
		if err := j.Close(); err != nil {
			panic(err)
		}
	})

	return j
}

func (j *JSONWriter) write(records []Record) error {
	for _, r := range records {
		if err := j.enc.Encode(r); err != nil {
			return err
		}
	}

	return nil
}

// Close flushes the writer and closes the file it was opened on, if any.
func (j *JSONWriter) Close() error {
	err := j.Flush()

	if j.closer != nil {
		closeErr := j.closer.Close()
		j.closer = nil

		if err == nil {
			err = closeErr
		}
	}

	return err
}
