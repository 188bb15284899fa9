package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"dmgcore/internal/audio"
	"dmgcore/internal/cartridge"
	"dmgcore/internal/emulator"
)

// Version information
const (
	Version     = "0.1.0"
	ProjectName = "Game Boy Emulator"
)

func main() {
	// A project .env, if present, supplies defaults (sample rate, save dir,
	// key bindings) before flags are parsed. Missing file is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	app := cli.NewApp()
	app.Name = filepathBase(os.Args[0])
	app.Usage = "A Game Boy emulator written in Go"
	app.Version = Version
	app.Action = runAction

	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "enable debug mode"},
		cli.BoolFlag{Name: "step", Usage: "enable step-by-step execution"},
		cli.IntFlag{Name: "max-steps", Value: 100, Usage: "maximum steps in step mode (0 for unlimited)"},
		cli.StringFlag{Name: "save", Usage: "override the battery-backed save file path"},
		cli.IntFlag{Name: "sample-rate", Value: audio.DefaultSampleRate, Usage: "audio sample rate in Hz"},
		cli.StringFlag{Name: "wav-out", Usage: "capture mixed audio to a WAV file instead of live SDL2 playback"},
		cli.BoolFlag{Name: "no-verify", Usage: "skip cartridge logo/checksum verification on load"},
	}

	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "show ROM file information",
			ArgsUsage: "<rom_file>",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return cli.NewExitError("Error: ROM file path required for info command", 1)
				}
				showROMInfo(c.Args().Get(0))
				return nil
			},
		},
		{
			Name:      "validate",
			Usage:     "validate a ROM file",
			ArgsUsage: "<rom_file>",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return cli.NewExitError("Error: ROM file path required for validate command", 1)
				}
				validateROM(c.Args().Get(0))
				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "scan a directory for ROM files",
			ArgsUsage: "<directory>",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return cli.NewExitError("Error: directory path required for scan command", 1)
				}
				scanDirectory(c.Args().Get(0))
				return nil
			},
		},
		{
			Name:      "link",
			Usage:     "run two ROMs joined over an in-process serial link",
			ArgsUsage: "<rom_a> <rom_b>",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return cli.NewExitError("Error: two ROM file paths required for link command", 1)
				}
				return runLinkMode(c.Args().Get(0), c.Args().Get(1), c.GlobalInt("max-steps"))
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func filepathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// runAction is the default command: run a ROM, or fall through to help if
// none was given.
func runAction(c *cli.Context) error {
	fmt.Printf("%s v%s\n", ProjectName, Version)
	fmt.Println("A Game Boy emulator written in Go")
	fmt.Println()

	romPath := c.Args().Get(0)
	if romPath == "" {
		return cli.ShowAppHelp(c)
	}

	sessionID := uuid.New()
	if c.Bool("debug") {
		log.Printf("session %s: starting ROM %s", sessionID, romPath)
	}

	return runEmulator(romPath, c.Bool("debug"), c.Bool("step"), c.Int("max-steps"), c.String("wav-out"), c.Int("sample-rate"), sessionID)
}

// runEmulator loads a ROM and starts the emulation
func runEmulator(romFile string, debugMode, stepMode bool, maxSteps int, wavOut string, sampleRate int, sessionID uuid.UUID) error {
	fmt.Printf("Loading ROM: %s\n", romFile)

	emu, err := newEmulatorForSession(romFile, wavOut, sampleRate)
	if err != nil {
		return fmt.Errorf("failed to create emulator: %v", err)
	}
	defer func() {
		if cerr := emu.Cleanup(); cerr != nil {
			log.Printf("session %s: cleanup error: %v", sessionID, cerr)
		}
	}()

	// Show ROM information
	fmt.Printf("Emulator initialized successfully! (session %s)\n", sessionID)
	fmt.Printf("ROM Bank: %d, RAM Bank: %d\n", emu.Cartridge.GetCurrentROMBank(), emu.Cartridge.GetCurrentRAMBank())
	fmt.Printf("Initial CPU State: PC=0x%04X, SP=0x%04X, A=0x%02X\n",
		emu.CPU.PC, emu.CPU.SP, emu.CPU.A)
	fmt.Println()

	emu.SetDebugMode(debugMode)
	emu.SetStepMode(stepMode)

	if stepMode {
		return runStepMode(emu, maxSteps)
	} else if debugMode {
		return runDebugMode(emu)
	}
	return runNormalMode(emu)
}

// newEmulatorForSession builds an Emulator, swapping in the WAV capture
// audio driver when wavOut is set instead of the default live SDL2 driver.
func newEmulatorForSession(romFile, wavOut string, sampleRate int) (*emulator.Emulator, error) {
	if wavOut == "" {
		return emulator.NewEmulator(romFile)
	}

	wavDriver, err := audio.NewWAVAudioOutput(wavOut)
	if err != nil {
		return nil, fmt.Errorf("failed to create WAV audio driver: %v", err)
	}
	emu, err := emulator.NewEmulatorWithAudio(romFile, wavDriver)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Capturing audio to: %s (%d Hz)\n", wavOut, sampleRate)
	return emu, nil
}

// runLinkMode steps two emulator instances in lockstep with their serial
// ports cross-wired, demonstrating a two-console link session in-process.
func runLinkMode(romA, romB string, maxSteps int) error {
	emuA, err := emulator.NewEmulator(romA)
	if err != nil {
		return fmt.Errorf("failed to load %s: %v", romA, err)
	}
	defer emuA.Cleanup()

	emuB, err := emulator.NewEmulator(romB)
	if err != nil {
		return fmt.Errorf("failed to load %s: %v", romB, err)
	}
	defer emuB.Cleanup()

	emuA.MMU.GetSerial().SetPeerLink(emuB.MMU.GetSerial())
	emuB.MMU.GetSerial().SetPeerLink(emuA.MMU.GetSerial())

	fmt.Printf("Link session: %s <-> %s\n", romA, romB)

	steps := 0
	for maxSteps <= 0 || steps < maxSteps {
		if err := emuA.Step(); err != nil {
			return fmt.Errorf("%s: %v", romA, err)
		}
		if err := emuB.Step(); err != nil {
			return fmt.Errorf("%s: %v", romB, err)
		}
		if emuA.GetState() != emulator.StateRunning && emuA.GetState() != emulator.StateHalted {
			break
		}
		if emuB.GetState() != emulator.StateRunning && emuB.GetState() != emulator.StateHalted {
			break
		}
		steps++
	}

	fmt.Printf("Link session ended after %d joint steps.\n", steps)
	return nil
}

// runStepMode executes emulator in step-by-step mode
func runStepMode(emu *emulator.Emulator, maxSteps int) error {
	fmt.Println("=== Step Mode ===")
	fmt.Println("Press Enter to execute each instruction, 'q' to quit, 'r' to run normally")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	stepCount := 0

	for {
		if maxSteps > 0 && stepCount >= maxSteps {
			fmt.Printf("Reached maximum steps (%d). Stopping.\n", maxSteps)
			break
		}

		pc := emu.CPU.PC
		opcode := emu.MMU.ReadByte(pc)

		fmt.Printf("Step %d - PC: 0x%04X, Opcode: 0x%02X", stepCount+1, pc, opcode)

		if opcode == 0xCB {
			cbOpcode := emu.MMU.ReadByte(pc + 1)
			fmt.Printf(" 0x%02X (CB %s)", cbOpcode, getCBInstructionName(cbOpcode))
		} else {
			fmt.Printf(" (%s)", getInstructionName(opcode))
		}

		fmt.Printf(" | A=0x%02X, BC=0x%04X, DE=0x%04X, HL=0x%04X, SP=0x%04X\n",
			emu.CPU.A, emu.CPU.GetBC(), emu.CPU.GetDE(), emu.CPU.GetHL(), emu.CPU.SP)

		fmt.Print(">>> ")
		if !scanner.Scan() {
			break
		}

		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "q", "quit":
			fmt.Println("Quitting step mode.")
			return nil
		case "r", "run":
			fmt.Println("Switching to normal execution mode...")
			return runNormalMode(emu)
		case "", "s", "step":
			err := emu.Step()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return err
			}
			stepCount++

			switch emu.GetState() {
			case emulator.StateHalted:
				fmt.Println("CPU is halted. Waiting for interrupt...")
			case emulator.StateStopped:
				fmt.Println("CPU is stopped. Emulation complete.")
				return nil
			case emulator.StateError:
				fmt.Println("Emulator encountered an error.")
				return fmt.Errorf("emulator error")
			}
		default:
			fmt.Println("Commands: Enter/s=step, q=quit, r=run")
		}
		fmt.Println()
	}

	return nil
}

// runDebugMode executes emulator with debug output
func runDebugMode(emu *emulator.Emulator) error {
	fmt.Println("=== Debug Mode ===")
	fmt.Println("Running with debug output for first 100 instructions...")
	fmt.Println()

	for i := 0; i < 100; i++ {
		pc := emu.CPU.PC
		opcode := emu.MMU.ReadByte(pc)

		fmt.Printf("Step %d: PC=0x%04X, Op=0x%02X (%s)\n",
			i+1, pc, opcode, getInstructionName(opcode))

		err := emu.Step()
		if err != nil {
			return fmt.Errorf("execution error at step %d: %v", i+1, err)
		}

		if emu.GetState() != emulator.StateRunning {
			fmt.Printf("Emulator state changed to: %s\n", emu.GetState())
			break
		}
	}

	instructions, cycles := emu.GetStats()
	fmt.Printf("\nExecuted %d instructions, %d cycles\n", instructions, cycles)
	return nil
}

// runNormalMode executes emulator normally
func runNormalMode(emu *emulator.Emulator) error {
	fmt.Println("=== Normal Execution Mode ===")
	fmt.Println("Running emulator... (This is a basic implementation)")
	fmt.Println()

	maxInstructions := 10000

	for i := 0; i < maxInstructions; i++ {
		err := emu.Step()
		if err != nil {
			return fmt.Errorf("execution error after %d instructions: %v", i, err)
		}

		state := emu.GetState()
		if state != emulator.StateRunning {
			fmt.Printf("Emulator stopped after %d instructions. State: %s\n", i+1, state)
			break
		}

		if (i+1)%1000 == 0 {
			instructions, cycles := emu.GetStats()
			fmt.Printf("Progress: %d instructions, %d cycles\n", instructions, cycles)
		}
	}

	instructions, cycles := emu.GetStats()
	fmt.Printf("\nFinal stats: %d instructions, %d cycles\n", instructions, cycles)
	fmt.Printf("Final state: PC=0x%04X, A=0x%02X, SP=0x%04X\n",
		emu.CPU.PC, emu.CPU.A, emu.CPU.SP)

	return nil
}

// Helper functions for instruction names (basic implementation)
func getInstructionName(opcode uint8) string {
	switch opcode {
	case 0x00:
		return "NOP"
	case 0x01:
		return "LD BC,nn"
	case 0x06:
		return "LD B,n"
	case 0x0E:
		return "LD C,n"
	case 0x16:
		return "LD D,n"
	case 0x1E:
		return "LD E,n"
	case 0x26:
		return "LD H,n"
	case 0x2E:
		return "LD L,n"
	case 0x3E:
		return "LD A,n"
	case 0x3C:
		return "INC A"
	case 0x76:
		return "HALT"
	case 0x10:
		return "STOP"
	default:
		return fmt.Sprintf("Op_0x%02X", opcode)
	}
}

func getCBInstructionName(cbOpcode uint8) string {
	switch cbOpcode {
	case 0x07:
		return "RLC A"
	case 0x17:
		return "RL A"
	case 0x37:
		return "SWAP A"
	default:
		return fmt.Sprintf("CB_0x%02X", cbOpcode)
	}
}

// showROMInfo displays detailed information about a ROM file
func showROMInfo(romFile string) {
	fmt.Printf("Analyzing ROM file: %s\n", romFile)
	fmt.Println()

	info, err := cartridge.GetROMInfo(romFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("=== ROM Information ===")
	fmt.Printf("File: %s\n", info.Filename)
	fmt.Printf("Title: %s\n", info.Title)
	fmt.Printf("Type: %s (0x%02X)\n", info.TypeName, uint8(info.CartridgeType))
	fmt.Printf("ROM Size: %d KB (%d bytes)\n", info.ROMSize/1024, info.ROMSize)
	fmt.Printf("RAM Size: %d KB (%d bytes)\n", info.RAMSize/1024, info.RAMSize)
	fmt.Printf("File Size: %d bytes\n", info.FileSize)
	fmt.Printf("Header Valid: %t\n", info.HeaderValid)

	romBanks := info.ROMSize / (16 * 1024)
	ramBanks := 0
	if info.RAMSize > 0 {
		ramBanks = info.RAMSize / (8 * 1024)
	}

	fmt.Printf("ROM Banks: %d (16KB each)\n", romBanks)
	fmt.Printf("RAM Banks: %d (8KB each)\n", ramBanks)

	fmt.Println()
	fmt.Println("=== Features ===")
	switch info.CartridgeType {
	case cartridge.ROM_ONLY:
		fmt.Println("- Simple ROM-only cartridge")
		fmt.Println("- No memory banking")
		fmt.Println("- No save data support")
	case cartridge.MBC1, cartridge.MBC1_RAM, cartridge.MBC1_RAM_BATTERY:
		fmt.Println("- MBC1 Memory Bank Controller")
		fmt.Println("- ROM banking support (up to 2MB)")
		if info.RAMSize > 0 {
			fmt.Println("- External RAM support")
			if info.CartridgeType == cartridge.MBC1_RAM_BATTERY {
				fmt.Println("- Battery-backed save data")
			}
		}
	case cartridge.MBC2, cartridge.MBC2_BATTERY:
		fmt.Println("- MBC2 Memory Bank Controller")
		fmt.Println("- Built-in 512x4-bit RAM")
	case cartridge.MBC3, cartridge.MBC3_RAM, cartridge.MBC3_RAM_BATTERY, cartridge.MBC3_TIMER_BATTERY, cartridge.MBC3_TIMER_RAM_BATTERY:
		fmt.Println("- MBC3 Memory Bank Controller")
		fmt.Println("- ROM banking support")
		if info.CartridgeType == cartridge.MBC3_TIMER_BATTERY || info.CartridgeType == cartridge.MBC3_TIMER_RAM_BATTERY {
			fmt.Println("- Real-time clock support")
		}
	case cartridge.MBC5, cartridge.MBC5_RAM, cartridge.MBC5_RAM_BATTERY:
		fmt.Println("- MBC5 Memory Bank Controller")
		fmt.Println("- 9-bit ROM banking (up to 8MB)")
	default:
		fmt.Printf("- Cartridge type 0x%02X\n", uint8(info.CartridgeType))
		fmt.Println("- May not be fully supported")
	}
}

// validateROM validates a ROM file and shows the results
func validateROM(romFile string) {
	fmt.Printf("Validating ROM file: %s\n", romFile)
	fmt.Println()

	valid, err := cartridge.ValidateROMFile(romFile)

	if err != nil {
		fmt.Printf("Validation failed: %v\n", err)
		return
	}

	if valid {
		fmt.Println("ROM file is valid!")

		info, err := cartridge.GetROMInfo(romFile)
		if err == nil {
			fmt.Printf("Title: %s\n", info.Title)
			fmt.Printf("Type: %s\n", info.TypeName)
			fmt.Printf("Size: %d KB\n", info.ROMSize/1024)
		}
	} else {
		fmt.Println("ROM file is invalid")
	}
}

// scanDirectory scans a directory for ROM files
func scanDirectory(dirPath string) {
	fmt.Printf("Scanning directory: %s\n", dirPath)
	fmt.Println()

	romFiles, err := cartridge.ScanROMDirectory(dirPath, true)
	if err != nil {
		fmt.Printf("Error scanning directory: %v\n", err)
		return
	}

	if len(romFiles) == 0 {
		fmt.Println("No ROM files found.")
		return
	}

	fmt.Printf("Found %d ROM file(s):\n", len(romFiles))
	fmt.Println()

	for i, rom := range romFiles {
		fmt.Printf("%d. %s\n", i+1, rom.String())
	}

	fmt.Println()
	fmt.Println("=== Summary ===")

	typeCount := make(map[cartridge.CartridgeType]int)
	totalSize := int64(0)

	for _, rom := range romFiles {
		typeCount[rom.CartridgeType]++
		totalSize += rom.FileSize
	}

	fmt.Printf("Total ROMs: %d\n", len(romFiles))
	fmt.Printf("Total Size: %.2f MB\n", float64(totalSize)/(1024*1024))
	fmt.Println("Types:")

	for cartType, count := range typeCount {
		typeName := (&cartridge.Cartridge{CartridgeType: cartType}).GetCartridgeTypeName()
		fmt.Printf("  %s: %d\n", typeName, count)
	}
}
