package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Image is a program store saved as YAML. Words are plain integers, one per
// store slot, in store order; words past the end are Break.
//
//	name: factorial
//	description: print 12!
//	words: [3, 12, 3, 1, 6, 6, 16, 12, 6, 14, 7, 5, -8, 6, 4, 2]
type Image struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Words       []int64 `yaml:"words,flow"`
}

// LoadImage decodes and validates one image from r. Unknown fields are
// rejected.
func LoadImage(r io.Reader) (*Image, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var img Image
	if err := dec.Decode(&img); err != nil {
		if errors.Is(err, io.EOF) {
			err = errEmptyImage
		}
		return nil, fmt.Errorf("invalid program image: %w", err)
	}
	if err := img.validate(); err != nil {
		return nil, fmt.Errorf("invalid program image %q: %w", img.Name, err)
	}
	return &img, nil
}

// LoadImageFile is LoadImage from the named file.
func LoadImageFile(name string) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := LoadImage(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	return img, nil
}

// WriteImage encodes img as YAML into w.
func WriteImage(w io.Writer, img *Image) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(img); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func (img *Image) validate() error {
	if len(img.Words) > ProgramSize {
		return sizeError(len(img.Words))
	}
	for i, w := range img.Words {
		if w < math.MinInt32 || w > math.MaxUint32 {
			return wordError{i, w}
		}
	}
	return nil
}

// Program builds a program store from a validated image. Words above
// MaxInt32 keep their 32-bit pattern, so 0xffffffff and -1 encode the same.
func (img *Image) Program() *Program {
	var prog Program
	for i, w := range img.Words {
		prog[i] = Word(int32(uint32(w)))
	}
	return &prog
}

// imageOf captures prog as an Image, leaving out trailing Break words.
func imageOf(name, description string, prog *Program) *Image {
	end := ProgramSize
	for end > 0 && prog[end-1] == opBreak {
		end--
	}
	img := Image{
		Name:        name,
		Description: description,
		Words:       make([]int64, end),
	}
	for i, w := range prog[:end] {
		img.Words[i] = int64(w)
	}
	return &img
}

var errEmptyImage = errors.New("no document")

type sizeError int

type wordError struct {
	index int
	val   int64
}

func (n sizeError) Error() string {
	return fmt.Sprintf("%v words do not fit in a %v word store", int(n), ProgramSize)
}

func (we wordError) Error() string {
	return fmt.Sprintf("word @%v value %v does not fit in 32 bits", we.index, we.val)
}
