//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"os"
)

const speedscopeSchema = "https://www.speedscope.app/file-format-schema.json"

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first mark
	Frame int    `json:"frame"`
}

// events converts marks to balanced speedscope events. Closes that do not
// match the innermost open scope are dropped; scopes still open at the end
// are closed at the last timestamp.
func events(marks []mark) (out []ssEvent, end int64) {
	if len(marks) == 0 {
		return nil, 0
	}
	base := marks[0].at
	var stack []int
	last := int64(0)
	for _, m := range marks {
		at := max((m.at-base)/1000, last)
		if m.open {
			stack = append(stack, m.id)
			out = append(out, ssEvent{Type: "O", At: at, Frame: m.id})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != m.id {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: m.id})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

func writeSpeedscope(marks []mark, labels []string, path string) error {
	evs, end := events(marks)
	if len(evs) == 0 {
		return errors.New("no balanced scopes to write")
	}
	frames := make([]ssFrame, len(labels))
	for i, l := range labels {
		frames[i] = ssFrame{Name: l}
	}
	doc := ssFile{
		Schema: speedscopeSchema,
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "grove",
			Unit:     "microseconds",
			EndValue: end,
			Events:   evs,
		}},
		Exporter: "grove-profiler",
		Name:     "grove capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
