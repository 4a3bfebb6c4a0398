package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type namedImage struct {
	Key     string
	DataURL string
}

// orderedImages decodes a JSON object of key to data URL while keeping the
// order the keys appear in the document. A repeated key keeps its first
// position and takes the last value.
type orderedImages []namedImage

func (o *orderedImages) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("images must be an object")
	}

	images := make(orderedImages, 0)
	index := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in images", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("image %q must be a string: %w", key, err)
		}

		if i, seen := index[key]; seen {
			images[i].DataURL = value
			continue
		}
		index[key] = len(images)
		images = append(images, namedImage{Key: key, DataURL: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = images
	return nil
}
