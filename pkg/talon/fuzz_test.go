// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// randomRegister picks a random register from a variant's register table
func randomRegister(rng *rand.Rand, m Model) Register {
	infos := Registers(m)
	return infos[rng.Intn(len(infos))].Register
}

// ============================================================
// Encoder Fuzz Tests
// ============================================================

// TestFuzzEncodeDH3_FrameShape verifies every generated DH3 frame keeps
// its fixed length, preamble, and trailer regardless of input
func TestFuzzEncodeDH3_FrameShape(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		reg := Register(rng.Intn(0x10000))
		value := int(int32(rng.Uint32()))
		write := rng.Intn(2) == 1

		frame := EncodeDH3Frame(reg, value, write)

		if len(frame) != DH3FrameLength {
			t.Fatalf("Round %d: frame length = %d, want %d", i, len(frame), DH3FrameLength)
		}
		for j, b := range dh3Preamble {
			if frame[j] != b {
				t.Fatalf("Round %d: preamble byte %d = 0x%02X", i, j, frame[j])
			}
		}
		if frame[DH3FrameLength-1] != dh3Trailer {
			t.Fatalf("Round %d: trailer = 0x%02X", i, frame[DH3FrameLength-1])
		}
	}
}

// TestFuzzEncodeRGD_CRCConsistency verifies the appended CRC always covers
// the first six bytes
func TestFuzzEncodeRGD_CRCConsistency(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		reg := Register(rng.Intn(0x10000))
		value := rng.Intn(65536) - 32768
		write := rng.Intn(2) == 1

		frame := EncodeRGDFrame(reg, value, write)

		if len(frame) != RGDFrameLength {
			t.Fatalf("Round %d: frame length = %d, want %d", i, len(frame), RGDFrameLength)
		}
		crc := CalculateCRC(frame[:6])
		if frame[6] != byte(crc) || frame[7] != byte(crc>>8) {
			t.Fatalf("Round %d: CRC bytes %02X %02X, want %02X %02X",
				i, frame[6], frame[7], byte(crc), byte(crc>>8))
		}
	}
}

// ============================================================
// Round Trip Fuzz Tests
// ============================================================

// TestFuzzDH3RoundTrip encodes random commands and verifies they parse
// back to the same register, value, and direction
func TestFuzzDH3RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		reg := randomRegister(rng, ModelDH3)
		value := int(int32(rng.Uint32()))
		write := rng.Intn(2) == 1

		frame := EncodeDH3Frame(reg, value, write)
		gotReg, gotValue, gotWrite, err := ParseDH3Command(frame)
		if err != nil {
			t.Fatalf("Round %d: parse error: %v", i, err)
		}
		if gotReg != reg || gotValue != value || gotWrite != write {
			t.Fatalf("Round %d: got (0x%04X, %d, %v), want (0x%04X, %d, %v)",
				i, uint16(gotReg), gotValue, gotWrite, uint16(reg), value, write)
		}
	}
}

// TestFuzzRGDRoundTrip encodes random commands and verifies they parse
// back to the same register, value, and direction. Values stay above the
// int16 minimum because the negative off-by-one shifts the wire image down
// by one.
func TestFuzzRGDRoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		reg := randomRegister(rng, ModelRGD)
		value := rng.Intn(65535) - 32767
		write := rng.Intn(2) == 1

		frame := EncodeRGDFrame(reg, value, write)
		gotReg, gotValue, gotWrite, err := ParseRGDCommand(frame)
		if err != nil {
			t.Fatalf("Round %d: parse error: %v", i, err)
		}
		if gotReg != reg || gotValue != value || gotWrite != write {
			t.Fatalf("Round %d: got (0x%04X, %d, %v), want (0x%04X, %d, %v)",
				i, uint16(gotReg), gotValue, gotWrite, uint16(reg), value, write)
		}
	}
}

// ============================================================
// Corruption Fuzz Tests
// ============================================================

// TestFuzzRGD_CorruptedFrames corrupts one byte of a valid frame and
// verifies the parser always rejects it. A single-byte burst is within
// the CRC's guaranteed detection range.
func TestFuzzRGD_CorruptedFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		reg := randomRegister(rng, ModelRGD)
		value := rng.Intn(65535) - 32767
		frame := EncodeRGDFrame(reg, value, rng.Intn(2) == 1)

		corruptIdx := rng.Intn(len(frame))
		frame[corruptIdx] ^= byte(rng.Intn(255) + 1)

		if _, _, _, err := ParseRGDCommand(frame); err == nil {
			t.Fatalf("Round %d: corrupted frame at byte %d accepted: % X", i, corruptIdx, frame)
		}
	}
}

// TestFuzzCRC_SingleByteCorruption verifies the CRC changes whenever one
// byte of the input changes
func TestFuzzCRC_SingleByteCorruption(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		length := rng.Intn(64) + 1
		data := make([]byte, length)
		rng.Read(data)
		original := CalculateCRC(data)

		idx := rng.Intn(length)
		data[idx] ^= byte(rng.Intn(255) + 1)

		if CalculateCRC(data) == original {
			t.Fatalf("Round %d: CRC unchanged after corrupting byte %d", i, idx)
		}
	}
}

// ============================================================
// Parser Fuzz Tests
// ============================================================

// TestFuzzParseFeedback_RandomBytes feeds random byte slices to the
// feedback parser and verifies it never panics and classifies lengths
// correctly
func TestFuzzParseFeedback_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		length := rng.Intn(64)
		data := make([]byte, length)
		rng.Read(data)

		value, err := ParseFeedback(data)
		if length < MinResponseLength {
			if err == nil {
				t.Fatalf("Round %d: %d-byte response accepted", i, length)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Round %d: %d-byte response rejected: %v", i, length, err)
		}
		if value < -32767 || value > 32767 {
			t.Fatalf("Round %d: value %d outside compensated int16 range", i, value)
		}
	}
}

// TestFuzzParseCommands_RandomBytes feeds random byte slices to the
// command parsers and verifies they never panic
func TestFuzzParseCommands_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		length := rng.Intn(20)
		data := make([]byte, length)
		rng.Read(data)

		ParseDH3Command(data)
		ParseRGDCommand(data)
	}
}
