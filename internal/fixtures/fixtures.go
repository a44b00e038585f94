// Package fixtures provides labeled handshape fixtures shared by tests.
// Each pose records the tip layout a detector would report and the letter
// it should read as.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed poses/*.json
var posesFS embed.FS

// Point is one tip position in frame-normalized coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pose is one labeled handshape fixture.
type Pose struct {
	Name        string  `json:"name"`
	Letter      string  `json:"letter"`
	Confidence  float64 `json:"confidence"`
	FingerCount int     `json:"finger_count"`
	Tips        []Point `json:"tips"`
}

// LoadPose loads a pose fixture by name.
func LoadPose(name string) (*Pose, error) {
	data, err := posesFS.ReadFile("poses/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load pose %s: %w", name, err)
	}

	var pose Pose
	if err := json.Unmarshal(data, &pose); err != nil {
		return nil, fmt.Errorf("decode pose %s: %w", name, err)
	}

	return &pose, nil
}

// Poses loads every pose fixture in lexical name order.
func Poses() ([]*Pose, error) {
	entries, err := posesFS.ReadDir("poses")
	if err != nil {
		return nil, err
	}

	var poses []*Pose
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		pose, err := LoadPose(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		poses = append(poses, pose)
	}

	return poses, nil
}
