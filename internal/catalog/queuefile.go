package catalog

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// QueueFile is a queue handed to the client on the command line. The file
// holds either this object or a bare array of tracks.
type QueueFile struct {
	Context *PlaybackContext `json:"context,omitempty"`
	Start   int              `json:"start" validate:"gte=0"`
	Tracks  []Track          `json:"tracks" validate:"required,min=1,dive"`
}

type queueTrack struct {
	ID    string `validate:"required"`
	Title string
}

// LoadQueueFile reads and validates a queue file.
func LoadQueueFile(path string) (QueueFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QueueFile{}, errors.Wrap(err, "read queue file")
	}
	return ParseQueueFile(data)
}

// ParseQueueFile decodes a queue file. Tracks must carry an id; a start past
// the end is rejected.
func ParseQueueFile(data []byte) (QueueFile, error) {
	var qf QueueFile
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &qf.Tracks); err != nil {
			return QueueFile{}, errors.Wrap(err, "decode queue file")
		}
	} else if err := json.Unmarshal(data, &qf); err != nil {
		return QueueFile{}, errors.Wrap(err, "decode queue file")
	}

	v := validator.New()
	if err := v.Struct(qf); err != nil {
		return QueueFile{}, errors.Wrap(err, "invalid queue file")
	}
	for i, t := range qf.Tracks {
		if err := v.Struct(queueTrack{ID: t.ID, Title: t.Title}); err != nil {
			return QueueFile{}, errors.Wrapf(err, "track %d", i)
		}
	}
	if qf.Start >= len(qf.Tracks) {
		return QueueFile{}, errors.Newf("start %d out of range for %d tracks", qf.Start, len(qf.Tracks))
	}
	return qf, nil
}
