package protocol

import (
	"fmt"

	"github.com/automoto/hookshot/shared/messages"
	"github.com/hashicorp/go-msgpack/v2/codec"
)

var msgpackHandle = &codec.MsgpackHandle{}

// EncodeImage serializes a snapshot with msgpack.
func EncodeImage(img messages.ServerImage) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpackHandle).Encode(img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return out, nil
}

// DecodeImage is the inverse of EncodeImage.
func DecodeImage(data []byte) (messages.ServerImage, error) {
	var img messages.ServerImage
	if err := codec.NewDecoderBytes(data, msgpackHandle).Decode(&img); err != nil {
		return messages.ServerImage{}, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
