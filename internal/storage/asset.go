package storage

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

const assetVersion = 1

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Validate checks that id is usable as a file name and a key suffix.
func (id Identifier) Validate() error {
	if id == "" {
		return fmt.Errorf("id must be set")
	}
	if !identifierPattern.MatchString(id.String()) {
		return fmt.Errorf("id must be alphanumeric")
	}
	return nil
}

// Asset is the versioned envelope every stored value is wrapped in.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	} else if a.Version > assetVersion {
		el.Add(fmt.Errorf("version %d is newer than supported version %d", a.Version, assetVersion))
	}

	el.Add(a.Identifier.Validate())
	el.Add(a.Spec.Validate())

	return el.Err()
}

func encodeAsset[T ValidatingSpec](id string, v T) ([]byte, error) {
	asset := &Asset[T]{
		Version:    assetVersion,
		Identifier: Identifier(id),
		Spec:       v,
	}

	err := asset.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", id, err)
	}

	jsonData, err := json.Marshal(asset)
	if err != nil {
		return nil, fmt.Errorf("marshalling json: %w", err)
	}
	return jsonData, nil
}

func decodeAsset[T ValidatingSpec](id string, data []byte) (T, error) {
	var zero T

	asset := &Asset[T]{}
	err := json.Unmarshal(data, asset)
	if err != nil {
		return zero, fmt.Errorf("unmarshalling asset: %w", err)
	}

	if asset.Identifier.String() != id {
		return zero, fmt.Errorf("asset id %q does not match %q", asset.Identifier, id)
	}

	err = asset.Validate()
	if err != nil {
		return zero, fmt.Errorf("validating %s: %w", id, err)
	}

	return asset.Spec, nil
}
