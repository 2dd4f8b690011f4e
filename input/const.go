package input

// KeyCode is a platform key code (Android numbering).
type KeyCode int

const (
	KeyDpadUp       KeyCode = 19
	KeyDpadDown     KeyCode = 20
	KeyDpadLeft     KeyCode = 21
	KeyDpadRight    KeyCode = 22
	KeyButtonA      KeyCode = 96
	KeyButtonB      KeyCode = 97
	KeyButtonX      KeyCode = 99
	KeyButtonY      KeyCode = 100
	KeyButtonL1     KeyCode = 102
	KeyButtonR1     KeyCode = 103
	KeyButtonL2     KeyCode = 104
	KeyButtonR2     KeyCode = 105
	KeyButtonThumbL KeyCode = 106
	KeyButtonThumbR KeyCode = 107
	KeyButtonStart  KeyCode = 108
	KeyButtonSelect KeyCode = 109
	KeyButtonMode   KeyCode = 110
)

// Axis is a motion axis identifier (Android numbering).
type Axis int

const (
	AxisX        Axis = 0
	AxisY        Axis = 1
	AxisZ        Axis = 11
	AxisRZ       Axis = 14
	AxisHatX     Axis = 15
	AxisHatY     Axis = 16
	AxisLTrigger Axis = 17
	AxisRTrigger Axis = 18
)

// Source is the capability bitmask of the device an event came from.
type Source uint32

const (
	SourceKeyboard    Source = 0x00000101
	SourceDpad        Source = 0x00000201
	SourceGamepad     Source = 0x00000401
	SourceTouchscreen Source = 0x00001002
	SourceMouse       Source = 0x00002002
	SourceJoystick    Source = 0x01000010
)

// KeyAction is the action of a key event.
type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
	KeyMultiple
)

// MotionAction is the action of a generic motion event.
type MotionAction int

const (
	MotionMove      MotionAction = 2
	MotionHoverMove MotionAction = 7
	MotionScroll    MotionAction = 8
)

// TouchAction is the action of a touch event.
type TouchAction int

const (
	TouchDown        TouchAction = 0
	TouchUp          TouchAction = 1
	TouchMove        TouchAction = 2
	TouchCancel      TouchAction = 3
	TouchPointerDown TouchAction = 5
	TouchPointerUp   TouchAction = 6
)

var keyNames = map[string]KeyCode{
	"DPAD_UP":       KeyDpadUp,
	"DPAD_DOWN":     KeyDpadDown,
	"DPAD_LEFT":     KeyDpadLeft,
	"DPAD_RIGHT":    KeyDpadRight,
	"BUTTON_A":      KeyButtonA,
	"BUTTON_B":      KeyButtonB,
	"BUTTON_X":      KeyButtonX,
	"BUTTON_Y":      KeyButtonY,
	"BUTTON_L1":     KeyButtonL1,
	"BUTTON_R1":     KeyButtonR1,
	"BUTTON_L2":     KeyButtonL2,
	"BUTTON_R2":     KeyButtonR2,
	"BUTTON_THUMBL": KeyButtonThumbL,
	"BUTTON_THUMBR": KeyButtonThumbR,
	"BUTTON_START":  KeyButtonStart,
	"BUTTON_SELECT": KeyButtonSelect,
	"BUTTON_MODE":   KeyButtonMode,
}

var axisNames = map[string]Axis{
	"X":        AxisX,
	"Y":        AxisY,
	"Z":        AxisZ,
	"RZ":       AxisRZ,
	"HAT_X":    AxisHatX,
	"HAT_Y":    AxisHatY,
	"LTRIGGER": AxisLTrigger,
	"RTRIGGER": AxisRTrigger,
}

var sourceNames = map[string]Source{
	"keyboard":    SourceKeyboard,
	"dpad":        SourceDpad,
	"gamepad":     SourceGamepad,
	"touchscreen": SourceTouchscreen,
	"mouse":       SourceMouse,
	"joystick":    SourceJoystick,
}
