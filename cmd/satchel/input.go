package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/satchel/internal/wardrobe"
	"github.com/hpungsan/satchel/internal/weather"
)

// maxInputBytes caps trip files and stdin input.
const maxInputBytes = 4 << 20

// tripFile is the on-disk shape of a plan request. YAML and JSON are both
// accepted; keys follow the MCP tool arguments.
type tripFile struct {
	ID             string               `json:"id,omitempty"`
	Name           string               `json:"name,omitempty"`
	LocationID     string               `json:"location_id,omitempty"`
	LocationLabels map[string]string    `json:"location_labels,omitempty"`
	Wardrobe       []wardrobe.RawItem   `json:"wardrobe,omitempty"`
	Weather        []weather.DayWeather `json:"weather,omitempty"`
	Activities     []string             `json:"activities,omitempty"`
	Gender         string               `json:"gender,omitempty"`
	Prompt         string               `json:"prompt,omitempty"`
}

// loadTripFile reads a trip file from path, or from stdin when path is "-".
func loadTripFile(path string) (*tripFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = readStdin(maxInputBytes)
	} else {
		data, err = readFileLimited(path, maxInputBytes)
	}
	if err != nil {
		return nil, err
	}
	return parseTripFile(data)
}

// parseTripFile decodes YAML (a superset of JSON) and then maps the generic
// document onto tripFile through its json tags, so both formats share one
// set of key names and the weather condition normalization.
func parseTripFile(data []byte) (*tripFile, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse trip file: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("trip file is empty")
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, fmt.Errorf("trip file must be a mapping, got %T", doc)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert trip file: %w", err)
	}
	var tf tripFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("decode trip file: %w", err)
	}
	return &tf, nil
}

// readFileLimited reads at most limit bytes from path.
func readFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, limit)
}

// readStdin reads all content from stdin, up to limit bytes.
func readStdin(limit int64) ([]byte, error) {
	return readLimited(os.Stdin, limit)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("input exceeds %d bytes", limit)
	}
	return data, nil
}
