// Package image defines the program image exchanged between the riscy
// assembler and virtual machine, and its file formats.
//
// An image is the word sequence
//
//	[data_size] data... [text_size] text...
//
// loaded at address 0 of the VM memory. Data therefore starts at address 1,
// the text header sits at 1+data_size, and text starts right after it.
package image

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ezrec/riscy/internal"
)

const (
	MEMORY_SIZE = 65536 // Words of VM address space.
	DATA_START  = 1     // Address of the first data word.
)

// Image is a program image split into its two segments.
type Image struct {
	Data []uint16 // Data segment words.
	Text []uint16 // Text segment words.
}

// New creates an image after checking that it fits the address space.
func New(data, text []uint16) (img *Image, err error) {
	img = &Image{Data: data, Text: text}
	if img.Len() > MEMORY_SIZE {
		img = nil
		err = ErrImageTooLarge
	}
	return
}

// FromWords splits a flat word sequence into an image, validating both
// headers against the number of words present.
func FromWords(words []uint16) (img *Image, err error) {
	if len(words) == 0 {
		err = ErrImageEmpty
		return
	}
	if len(words) > MEMORY_SIZE {
		err = ErrImageTooLarge
		return
	}

	dataSize := int(words[0])
	textHeader := DATA_START + dataSize
	if textHeader >= len(words) {
		err = fmt.Errorf("%w: data size %d, %d words", ErrImageTruncated, dataSize, len(words))
		return
	}

	textSize := int(words[textHeader])
	end := textHeader + 1 + textSize
	switch {
	case end > len(words):
		err = fmt.Errorf("%w: text size %d, %d words", ErrImageTruncated, textSize, len(words))
		return
	case end < len(words):
		err = fmt.Errorf("%w: %d", ErrImageTrailing, len(words)-end)
		return
	}

	img = &Image{
		Data: slices.Clone(words[DATA_START:textHeader]),
		Text: slices.Clone(words[textHeader+1 : end]),
	}

	return
}

// DataSize is the data segment size header.
func (img *Image) DataSize() uint16 {
	return uint16(len(img.Data))
}

// TextSize is the text segment size header.
func (img *Image) TextSize() uint16 {
	return uint16(len(img.Text))
}

// TextHeader is the address of the text size header.
func (img *Image) TextHeader() int {
	return DATA_START + len(img.Data)
}

// TextStart is the address of the first instruction.
func (img *Image) TextStart() int {
	return img.TextHeader() + 1
}

// End is the address one past the last instruction.
func (img *Image) End() int {
	return img.TextStart() + len(img.Text)
}

// Len is the number of words in the image, headers included.
func (img *Image) Len() int {
	return len(img.Data) + len(img.Text) + 2
}

// Words iterates over the image in load order, headers included.
func (img *Image) Words() iter.Seq[uint16] {
	return internal.IterSeqConcat(
		internal.IterSeqOne(img.DataSize()),
		slices.Values(img.Data),
		internal.IterSeqOne(img.TextSize()),
		slices.Values(img.Text),
	)
}

// Slice returns the image as a flat word slice.
func (img *Image) Slice() []uint16 {
	return slices.AppendSeq(make([]uint16, 0, img.Len()), img.Words())
}
