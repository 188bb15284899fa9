package cartridge

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// SavePath returns the conventional battery-backed save file path for a ROM:
// the ROM path with its extension replaced by ".sav".
func SavePath(romPath string) string {
	if ext := romExt(romPath); ext != "" {
		return strings.TrimSuffix(romPath, ext) + ".sav"
	}
	return romPath + ".sav"
}

func romExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

// SaveState writes mbc's battery-backed RAM (and, for MBC3, its RTC register
// block) to w. It is a no-op that writes zero bytes if the cartridge has no
// battery.
func SaveState(w io.Writer, mbc MBC) error {
	data := mbc.SaveRAM()
	if data == nil {
		return nil
	}
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("cartridge: write save state: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("cartridge: short write of save state: %d of %d bytes", n, len(data))
	}
	return nil
}

// LoadState reads a previously saved battery-backed RAM image (and RTC block,
// where applicable) from r and restores it onto mbc.
func LoadState(r io.Reader, mbc MBC) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cartridge: read save state: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	mbc.LoadRAM(data)
	return nil
}

// SaveStateToFile writes the cartridge's save state to the conventional path
// for romPath, skipping cartridges with no battery-backed RAM.
func SaveStateToFile(romPath string, mbc MBC) error {
	if !mbc.HasBattery() {
		return nil
	}
	f, err := os.Create(SavePath(romPath))
	if err != nil {
		return fmt.Errorf("cartridge: create save file: %w", err)
	}
	defer f.Close()
	return SaveState(f, mbc)
}

// LoadStateFromFile restores save state from the conventional path for
// romPath. A missing save file is not an error: a fresh cartridge simply
// starts with RAM zeroed.
func LoadStateFromFile(romPath string, mbc MBC) error {
	f, err := os.Open(SavePath(romPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cartridge: open save file: %w", err)
	}
	defer f.Close()
	return LoadState(f, mbc)
}
