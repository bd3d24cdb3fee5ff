package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Read and write the canonical 44 byte RIFF/WAVE header
 *		and the 16 bit mono PCM samples that follow it.
 *
 * Description:	Only the minimal layout is supported: "RIFF", size,
 *		"WAVE", "fmt " with 16 byte PCM block, then "data".
 *		Files with extra chunks between "fmt " and "data" are
 *		rejected rather than skipped.  All numeric fields are
 *		little endian.
 *
 *		The header is written up front with pre-computed
 *		sizes; the pipeline is deterministic given the input
 *		length, so no seek-back fixup is needed.
 *
 *----------------------------------------------------------------*/

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

const (
	wavHeaderSize      = 44
	bytesPerSample     = 2
	maxWavDataBytes    = math.MaxUint32
	wavPcmFormat       = 1
	wavPcmSubchunkSize = 16
)

type wavHeader struct {
	Riff          [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + Subchunk2Size
	Wave          [4]byte // "WAVE"
	Fmt           [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * BlockAlign
	BlockAlign    uint16 // NumChannels * BitsPerSample/8
	BitsPerSample uint16
	Data          [4]byte // "data"
	Subchunk2Size uint32  // sample bytes following
}

// writeWavHeader emits the header for a mono 16 bit file holding
// totalSamples samples.
func writeWavHeader(w io.Writer, sampleRate int, totalSamples uint64) error {

	var dataBytes = totalSamples * bytesPerSample
	if dataBytes > maxWavDataBytes {
		return wrapf(ErrWavTooLarge, "%d sample bytes exceed the container's 32 bit size field", dataBytes)
	}

	var hdr = wavHeader{
		Riff:          [4]byte{'R', 'I', 'F', 'F'},
		Wave:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: wavPcmSubchunkSize,
		AudioFormat:   wavPcmFormat,
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * bytesPerSample,
		BlockAlign:    bytesPerSample,
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(dataBytes),
	}
	hdr.ChunkSize = 36 + hdr.Subchunk2Size

	return binary.Write(w, binary.LittleEndian, &hdr)
}

// readWavHeader consumes and validates the header, returning the
// number of samples the data chunk claims to hold.  expectedRate is
// the decoder's configured sample rate; anything else is fatal.
func readWavHeader(r io.Reader, expectedRate int) (int, error) {

	var hdr wavHeader
	var readErr = binary.Read(r, binary.LittleEndian, &hdr)
	if readErr != nil {
		return 0, wrapf(ErrWavFormatInvalid, "header read failed: %v", readErr)
	}

	if string(hdr.Riff[:]) != "RIFF" || string(hdr.Wave[:]) != "WAVE" ||
		string(hdr.Fmt[:]) != "fmt " || string(hdr.Data[:]) != "data" {
		return 0, wrapf(ErrWavFormatInvalid, "bad chunk tags %q %q %q %q",
			hdr.Riff, hdr.Wave, hdr.Fmt, hdr.Data)
	}

	if hdr.AudioFormat != wavPcmFormat {
		return 0, wrapf(ErrWavFormatInvalid, "audio format %d, want PCM (%d)", hdr.AudioFormat, wavPcmFormat)
	}

	if hdr.NumChannels != 1 {
		return 0, wrapf(ErrWavFormatInvalid, "%d channels, want mono", hdr.NumChannels)
	}

	if hdr.BitsPerSample != 16 {
		return 0, wrapf(ErrWavFormatInvalid, "%d bits per sample, want 16", hdr.BitsPerSample)
	}

	if int(hdr.SampleRate) != expectedRate {
		return 0, wrapf(ErrWavFormatInvalid, "sample rate %d, configured for %d", hdr.SampleRate, expectedRate)
	}

	return int(hdr.Subchunk2Size / bytesPerSample), nil
}

// writeSamples appends raw little endian samples.
func writeSamples(w io.Writer, samples []int16) error {

	var buf [bytesPerSample]byte

	for _, s := range samples {
		binary.LittleEndian.PutUint16(buf[:], uint16(s))

		var _, writeErr = w.Write(buf[:])
		if writeErr != nil {
			return writeErr
		}
	}

	return nil
}

// readSamples reads exactly count samples, failing with ErrWavTruncated
// when the file holds fewer than the header promised.
func readSamples(r io.Reader, count int) ([]int16, error) {

	var raw = make([]byte, count*bytesPerSample)

	var _, readErr = io.ReadFull(r, raw)
	if readErr != nil {
		if errors.Is(readErr, io.ErrUnexpectedEOF) || errors.Is(readErr, io.EOF) {
			return nil, wrapf(ErrWavTruncated, "header promises %d samples, file ends early", count)
		}
		return nil, readErr
	}

	var samples = make([]int16, count)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*bytesPerSample:]))
	}

	return samples, nil
}
