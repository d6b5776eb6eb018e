package debug

import (
	"io"
	"log"
	"os"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (menu layout, driver selection)
	LevelLive    = 2 // Live info (cursor moves, level changes)
	LevelVerbose = 3 // Verbose (decoded steps, accepted presses)
	LevelTrace   = 4 // Trace (GPIO, very low level)
)

var (
	level  int
	logger *log.Logger
)

// Init initializes the debug system with a level (0-4).
// 0 = no output
// 1 = important info (menu layout, driver selection)
// 2 = live info (cursor moves, level transitions)
// 3 = verbose (decoded steps, accepted button presses)
// 4 = trace (GPIO, very low level)
func Init(debugLevel int) {
	level = debugLevel
	if level > LevelOff {
		logger = log.New(os.Stdout, "[MenuGo] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output to the given writer.
// No-op when debug is off.
func SetOutput(w io.Writer) {
	if logger != nil {
		logger.SetOutput(w)
	}
}

// --- Level 1 functions (Info): important info ---

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Summary prints an important summary (level 1).
func Summary(title string) {
	if level >= LevelOff && logger != nil {
		logger.Printf("═══════════════════════════════════════")
		logger.Printf("  %s", title)
		logger.Printf("═══════════════════════════════════════")
	}
}

// Menu prints important menu layout info (level 1).
func Menu(rootItems, childItems int) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Menu: %d root items, %d child items (last child = Return)", rootItems, childItems)
	}
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO]   %s = %v", name, value)
	}
}

// --- Level 2 functions (Live): real-time info ---

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] "+format, args...)
	}
}

// Cursor prints a cursor move (level 2).
func Cursor(levelName string, index int) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] Cursor: %s item %d highlighted", levelName, index)
	}
}

// Enter prints a root-to-child transition (level 2).
func Enter(rootIndex int) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] Entered child list of root item %d", rootIndex)
	}
}

// Exit prints a child-to-root transition (level 2).
func Exit() {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] Returned to root list")
	}
}

// --- Level 3 functions (Verbose): everything ---

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Step prints a decoded encoder step (level 3).
func Step(delta int) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] Encoder step: %+d", delta)
	}
}

// Press prints an accepted button press (level 3).
func Press() {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] Button press accepted")
	}
}

// PrintStruct prints a struct in formatted form (level 3).
func PrintStruct(name string, v interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] %s: %+v", name, v)
	}
}

// Section prints a section separator (level 3).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// --- Level 4 functions (Trace): very low level ---

// Trace prints a level 4 message (trace, GPIO).
func Trace(format string, args ...interface{}) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] "+format, args...)
	}
}

// GPIO prints a GPIO operation (level 4).
func GPIO(operation string, pin int, value interface{}) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[GPIO] %s pin=%d value=%v", operation, pin, value)
	}
}
