package imaging

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createTestDDSHeader builds a minimal 128-byte DDS header.
func createTestDDSHeader(width, height, mips, caps2 uint32) []byte {
	buf := make([]byte, ddsHeaderSize)
	copy(buf, "DDS ")

	put := func(word int, v uint32) {
		binary.LittleEndian.PutUint32(buf[word*4:], v)
	}
	put(1, 124) // header size
	put(3, height)
	put(4, width)
	put(7, mips)
	put(28, caps2)
	return buf
}

func TestParseDDSHeader_CubeFlag(t *testing.T) {
	info, err := ParseDDSHeader(createTestDDSHeader(256, 256, 9, ddsCaps2Cubemap))
	if err != nil {
		t.Fatalf("ParseDDSHeader failed: %v", err)
	}
	if !info.IsCube() {
		t.Error("expected cube flag to be set")
	}
	if !info.MipChainComplete() {
		t.Error("9 mips for 256x256 is a complete chain")
	}
}

func TestParseDDSHeader_IncompleteMipChain(t *testing.T) {
	info, err := ParseDDSHeader(createTestDDSHeader(256, 256, 1, ddsCaps2Cubemap))
	if err != nil {
		t.Fatalf("ParseDDSHeader failed: %v", err)
	}
	if info.MipChainComplete() {
		t.Error("1 mip for 256x256 should be incomplete")
	}
	// Cube detection is independent of the mip chain.
	if !info.IsCube() {
		t.Error("cube flag should still be honored with an incomplete chain")
	}
}

func TestParseDDSHeader_NoCubeFlag(t *testing.T) {
	info, err := ParseDDSHeader(createTestDDSHeader(64, 64, 7, 0))
	if err != nil {
		t.Fatalf("ParseDDSHeader failed: %v", err)
	}
	if info.IsCube() {
		t.Error("cube flag should not be set")
	}
}

func TestParseDDSHeader_ZeroMips(t *testing.T) {
	info, err := ParseDDSHeader(createTestDDSHeader(64, 64, 0, 0))
	if err != nil {
		t.Fatalf("ParseDDSHeader failed: %v", err)
	}
	if !info.MipChainComplete() {
		t.Error("zero mip count means no chain to validate")
	}
}

func TestParseDDSHeader_InvalidMagic(t *testing.T) {
	data := createTestDDSHeader(64, 64, 1, 0)
	copy(data, "NOPE")
	if _, err := ParseDDSHeader(data); !errors.Is(err, ErrDDSMagic) {
		t.Errorf("expected ErrDDSMagic, got %v", err)
	}
}

func TestParseDDSHeader_Truncated(t *testing.T) {
	if _, err := ParseDDSHeader([]byte("DDS ")); !errors.Is(err, ErrDDSTruncated) {
		t.Errorf("expected ErrDDSTruncated, got %v", err)
	}
}

func TestLoadDDSInfo_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.dds")
	if err := os.WriteFile(path, createTestDDSHeader(128, 128, 8, ddsCaps2Cubemap), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	info, err := LoadDDSInfo(path)
	if err != nil {
		t.Fatalf("LoadDDSInfo failed: %v", err)
	}
	if info.Width != 128 || info.Height != 128 {
		t.Errorf("expected 128x128, got %dx%d", info.Width, info.Height)
	}
	if !info.IsCube() {
		t.Error("expected cube flag")
	}
}

func TestLoadDDSInfo_TruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.dds")
	if err := os.WriteFile(path, []byte("DDS "), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadDDSInfo(path); err == nil {
		t.Error("expected an error for a truncated file")
	}
}

func TestDecodeDDS_Uncompressed32(t *testing.T) {
	// 2x1 A8R8G8B8: masks select BGRA byte order.
	header := createTestDDSHeader(2, 1, 1, 0)
	put := func(word int, v uint32) {
		binary.LittleEndian.PutUint32(header[word*4:], v)
	}
	put(20, ddpfRGB|ddpfAlphaPixels) // pixel format flags
	put(22, 32)                      // bit count
	put(23, 0x00FF0000)              // red mask
	put(24, 0x0000FF00)              // green mask
	put(25, 0x000000FF)              // blue mask
	put(26, 0xFF000000)              // alpha mask

	// Pixels are little-endian B, G, R, A.
	data := append(header,
		0x10, 0x20, 0x30, 0xFF, // -> R=0x30 G=0x20 B=0x10 A=0xFF
		0x01, 0x02, 0x03, 0x80,
	)

	bmp, err := decodeDDS(data)
	if err != nil {
		t.Fatalf("decodeDDS failed: %v", err)
	}
	if bmp.W != 2 || bmp.H != 1 {
		t.Fatalf("expected 2x1, got %dx%d", bmp.W, bmp.H)
	}
	r, g, b, a := bmp.RGBA(0, 0)
	if r != 0x30 || g != 0x20 || b != 0x10 || a != 0xFF {
		t.Errorf("pixel 0: got %02x %02x %02x %02x", r, g, b, a)
	}
	r, g, b, a = bmp.RGBA(1, 0)
	if r != 0x03 || g != 0x02 || b != 0x01 || a != 0x80 {
		t.Errorf("pixel 1: got %02x %02x %02x %02x", r, g, b, a)
	}
}

func TestDecodeDDS_UnknownFourCC(t *testing.T) {
	header := createTestDDSHeader(4, 4, 1, 0)
	binary.LittleEndian.PutUint32(header[20*4:], ddpfFourCC)
	copy(header[84:88], "DX10")
	if _, err := decodeDDS(header); !errors.Is(err, ErrDDSFormat) {
		t.Errorf("expected ErrDDSFormat for DX10, got %v", err)
	}
}
