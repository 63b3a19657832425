package ecart

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// TimestampLayout is the human-facing date form used in cartridge JSON files
// and on the command line.
const TimestampLayout = "2006-01-02 15:04:05"

type (
	// Timestamp is a calendar timestamp with second precision. The EEPROM
	// stores its calendar fields verbatim, so no timezone conversion happens
	// anywhere in the codec.
	Timestamp struct {
		time.Time
	}
)

func NewTimestamp(year int, month time.Month, day, hour, minute, second int) Timestamp {
	return Timestamp{
		Time: time.Date(year, month, day, hour, minute, second, 0, time.UTC),
	}
}

func ParseTimestamp(value string) (Timestamp, error) {
	parsed, err := time.Parse(TimestampLayout, value)
	if err != nil {
		err := errors.Wrapf(err, `ParseTimestamp error parsing "%s"`, value)
		return Timestamp{}, err
	}
	return Timestamp{Time: parsed}, nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(bs []byte) error {
	value := ""
	if err := json.Unmarshal(bs, &value); err != nil {
		return errors.Wrap(err, "Timestamp.UnmarshalJSON error")
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return errors.Wrap(err, "Timestamp.UnmarshalJSON error")
	}
	*t = parsed
	return nil
}
