package ondisk

import (
	"encoding/binary"
	"fmt"
)

// DataBlock is one link in a file's data-extent chain.
type DataBlock struct {
	Next    uint32 // next data block index; 0 = end of extent
	Payload []byte // up to DataPayloadSize bytes
}

// EncodeDataBlock renders d into a fresh BlockSize-byte buffer. Payload
// shorter than DataPayloadSize is zero-padded; longer is an error.
func EncodeDataBlock(d DataBlock) ([]byte, error) {
	if len(d.Payload) > DataPayloadSize {
		return nil, &PayloadTooLargeError{Got: len(d.Payload), Max: DataPayloadSize}
	}
	b := make([]byte, BlockSize)
	b[0] = TypeData
	b[1] = Magic
	binary.LittleEndian.PutUint32(b[dataNextOffset:], d.Next)
	copy(b[dataPayloadOffset:], d.Payload)
	return b, nil
}

// DecodeDataBlock validates and parses a BlockSize-byte buffer as a
// DataBlock. The returned Payload always has length DataPayloadSize;
// callers that know the valid tail length (e.g. the last block of a file)
// must trim it themselves.
func DecodeDataBlock(b []byte) (DataBlock, error) {
	if err := checkHeader(b, TypeData); err != nil {
		return DataBlock{}, err
	}
	payload := make([]byte, DataPayloadSize)
	copy(payload, b[dataPayloadOffset:])
	return DataBlock{
		Next:    binary.LittleEndian.Uint32(b[dataNextOffset:]),
		Payload: payload,
	}, nil
}

// PayloadTooLargeError is returned when a data-block payload exceeds
// DataPayloadSize.
type PayloadTooLargeError struct {
	Got, Max int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload of %d bytes exceeds the %d-byte data block limit", e.Got, e.Max)
}
