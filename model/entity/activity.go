package entity

import (
	"bytes"
	"encoding/json"
)

// Activity is one extracurricular offering. MaxParticipants is informational only.
type Activity struct {
	Name            string   `json:"-" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether email is enrolled.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Catalog is a point-in-time view of every activity, keyed by name, in seed order.
type Catalog struct {
	Names []string
	Items map[string]Activity
}

func (c Catalog) Len() int { return len(c.Names) }

// Ordered returns the activities in seed order.
func (c Catalog) Ordered() []Activity {
	out := make([]Activity, 0, len(c.Names))
	for _, n := range c.Names {
		out = append(out, c.Items[n])
	}
	return out
}

// MarshalJSON writes the catalog as a JSON object whose keys keep seed order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.Names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		a := c.Items[name]
		if a.Participants == nil {
			a.Participants = []string{}
		}
		v, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
