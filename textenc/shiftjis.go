// Package textenc decodes the Shift-JIS encoded strings RPG Maker
// 2000/2003's original data files use for sprite names, switch labels,
// and move-route sound-effect file names — none of this core's own state
// is Shift-JIS (Character.SpriteName etc. are plain Go strings once
// loaded), but a fixture/asset loader sitting in front of it needs to
// decode the original byte encoding before populating those fields.
package textenc

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DecodeShiftJIS converts Shift-JIS encoded bytes (as found in legacy
// RPG Maker 2000/2003 LMU/LMT/RPG_RT.ldb data) into a UTF-8 string.
func DecodeShiftJIS(b []byte) (string, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeShiftJIS converts a UTF-8 string back into Shift-JIS bytes, for
// round-tripping edited fixture data into the original wire format.
func EncodeShiftJIS(s string) ([]byte, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	return out, nil
}
