package inputdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleTable = `I: Bus=0011 Vendor=0001 Product=0001 Version=ab41
N: Name="AT Translated Set 2 keyboard"
P: Phys=isa0060/serio0/input0
H: Handlers=sysrq kbd event0
B: EV=120013

I: Bus=0003 Vendor=046d Product=c077 Version=0111
N: Name="Logitech USB Optical Mouse"
P: Phys=usb-0000:00:14.0-2/input0
H: Handlers=mouse0 event3
B: EV=17

I: Bus=0011 Vendor=0002 Product=0007 Version=01b1
N: Name="SynPS/2 Synaptics TouchPad"
P: Phys=isa0060/serio1/input0
H: Handlers=mouse1 event4
B: EV=b
`

func TestParseKeepsOnlyPointers(t *testing.T) {
	got := parse(sampleTable)
	assert.Len(t, got, 2)

	assert.Equal(t, "Logitech USB Optical Mouse", got[0].Name)
	assert.Equal(t, []string{"mouse0", "event3"}, got[0].Handlers)
	assert.Equal(t, "/dev/input/mouse0", got[0].Node())

	assert.Equal(t, "SynPS/2 Synaptics TouchPad", got[1].Name)
	assert.Equal(t, "/dev/input/mouse1", got[1].Node())
}

func TestParseEmptyTable(t *testing.T) {
	assert.Empty(t, parse(""))
}

func TestNodeWithoutMouseHandler(t *testing.T) {
	p := Pointer{Name: "kbd", Handlers: []string{"sysrq", "event0"}}
	assert.Empty(t, p.Node())
}
