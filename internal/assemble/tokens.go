// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the cl100k_base BPE: the GPT-4 encoding and a close
// enough approximation for sizing prompts aimed at other models.
const encodingName = "cl100k_base"

// Cl100kCounter counts tokens with the tiktoken cl100k_base encoding.
type Cl100kCounter struct {
	enc *tiktoken.Tiktoken
}

// NewCl100kCounter loads the cl100k_base encoding.
func NewCl100kCounter() (*Cl100kCounter, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", encodingName, err)
	}
	return &Cl100kCounter{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (c *Cl100kCounter) Count(text string) (int, error) {
	return len(c.enc.Encode(text, nil, nil)), nil
}
