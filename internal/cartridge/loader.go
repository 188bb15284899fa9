package cartridge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var validROMExtensions = map[string]bool{".gb": true, ".gbc": true, ".rom": true}

// validGameBoyROMSizes lists the only byte counts a real DMG ROM can be:
// powers of two starting at 32KB, per the size field in the cartridge header.
var validGameBoyROMSizes = map[int64]bool{
	32 * 1024:   true,
	64 * 1024:   true,
	128 * 1024:  true,
	256 * 1024:  true,
	512 * 1024:  true,
	1024 * 1024: true,
	2048 * 1024: true,
	4096 * 1024: true,
	8192 * 1024: true,
}

func isValidROMSize(size int64) bool {
	return validGameBoyROMSizes[size]
}

// LoadROMFromFile reads filename from disk, validates its extension, and
// parses it into a Cartridge.
func LoadROMFromFile(filename string) (*Cartridge, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}
	if !fileExists(filename) {
		return nil, fmt.Errorf("ROM file not found: %s", filename)
	}
	if !hasValidROMExtension(filename) {
		return nil, fmt.Errorf("invalid ROM file extension: %s (expected .gb, .gbc, or .rom)", filepath.Ext(filename))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM file %s: %w", filename, err)
	}

	cart, err := NewCartridge(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create cartridge from %s: %w", filename, err)
	}
	return cart, nil
}

// LoadROMFromBytes parses ROM data already held in memory — the path tests
// and embedded-ROM callers use instead of touching disk. sourceName only
// labels error messages.
func LoadROMFromBytes(romData []byte, sourceName string) (*Cartridge, error) {
	if len(romData) == 0 {
		return nil, fmt.Errorf("ROM data is empty for %s", sourceName)
	}
	cart, err := NewCartridge(romData)
	if err != nil {
		return nil, fmt.Errorf("failed to create cartridge from %s: %w", sourceName, err)
	}
	return cart, nil
}

// ValidateROMFile checks extension, size, and header checksum without
// loading the full ROM into a Cartridge.
func ValidateROMFile(filename string) (bool, error) {
	if filename == "" {
		return false, fmt.Errorf("filename cannot be empty")
	}
	if !fileExists(filename) {
		return false, fmt.Errorf("file not found: %s", filename)
	}
	if !hasValidROMExtension(filename) {
		return false, fmt.Errorf("invalid file extension: %s", filepath.Ext(filename))
	}

	stat, err := os.Stat(filename)
	if err != nil {
		return false, fmt.Errorf("cannot get file info: %w", err)
	}
	if stat.Size() < MinROMSize {
		return false, fmt.Errorf("file too small: %d bytes (minimum %d)", stat.Size(), MinROMSize)
	}
	if !validGameBoyROMSizes[stat.Size()] {
		return false, fmt.Errorf("invalid ROM size: %d bytes (not a power-of-2 multiple of 32KB)", stat.Size())
	}

	ok, err := validateROMHeader(filename)
	if err != nil {
		return false, fmt.Errorf("header validation failed: %w", err)
	}
	if !ok {
		return false, fmt.Errorf("ROM header checksum is invalid")
	}
	return true, nil
}

// ROMInfo summarizes a ROM file's header without requiring a fully loaded cartridge.
type ROMInfo struct {
	Filename      string
	Title         string
	CartridgeType CartridgeType
	TypeName      string
	ROMSize       int
	RAMSize       int
	FileSize      int64
	HeaderValid   bool
}

// String renders a one-line summary of a ROMInfo, suitable for a ROM browser listing.
func (info *ROMInfo) String() string {
	return fmt.Sprintf("ROM{File: %s, Title: %q, Type: %s, ROM: %dKB, RAM: %dKB, Valid: %t}",
		filepath.Base(info.Filename), info.Title, info.TypeName,
		info.ROMSize/1024, info.RAMSize/1024, info.HeaderValid)
}

// GetROMInfo reads just the header portion of filename and reports its
// title, cartridge type, and declared sizes.
func GetROMInfo(filename string) (*ROMInfo, error) {
	header, err := readROMHeader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM header: %w", err)
	}

	probe := &Cartridge{ROMData: header}
	if err := probe.parseHeader(); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	stat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot get file info: %w", err)
	}

	return &ROMInfo{
		Filename:      filename,
		Title:         probe.Title,
		CartridgeType: probe.CartridgeType,
		ROMSize:       probe.ROMSize,
		RAMSize:       probe.RAMSize,
		HeaderValid:   probe.HeaderValid,
		FileSize:      stat.Size(),
		TypeName:      probe.GetCartridgeTypeName(),
	}, nil
}

// ScanROMDirectory walks dirPath (recursing into subdirectories when
// recursive is set) and returns ROMInfo for every file with a ROM
// extension. Files that fail to parse are skipped rather than aborting
// the whole scan — a single corrupt ROM shouldn't hide a whole library.
func ScanROMDirectory(dirPath string, recursive bool) ([]*ROMInfo, error) {
	dirInfo, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory %s: %w", dirPath, err)
	}
	if !dirInfo.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dirPath)
	}

	var found []*ROMInfo
	walkErr := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if !recursive && path != dirPath {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasValidROMExtension(path) {
			return nil
		}
		if romInfo, err := GetROMInfo(path); err == nil {
			found = append(found, romInfo)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("error scanning directory: %w", walkErr)
	}
	return found, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func hasValidROMExtension(filename string) bool {
	return validROMExtensions[strings.ToLower(filepath.Ext(filename))]
}

// readROMHeader reads just enough of filename (the first bank) to parse
// its header, avoiding a full read for callers that only need metadata.
func readROMHeader(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	header := make([]byte, MinROMSize)
	n, err := file.Read(header)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if n < MinROMSize {
		return nil, fmt.Errorf("file too small: read %d bytes, expected at least %d", n, MinROMSize)
	}
	return header, nil
}

func validateROMHeader(filename string) (bool, error) {
	header, err := readROMHeader(filename)
	if err != nil {
		return false, err
	}
	probe := &Cartridge{ROMData: header}
	return probe.verifyHeaderChecksum(), nil
}
