package serial_test

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/serialterm/serial"
)

func Example() {
	svc := serial.NewService(serial.DefaultConfig(), zerolog.Nop())

	out := svc.Open("/dev/ttyUSB0", 9600)
	if !out.Success {
		fmt.Println("open failed:", out.Content)
		return
	}
	defer svc.Close()

	// 0x0D embeds a raw carriage return in the command.
	out = svc.Send("ID;0x0D")
	fmt.Println(out.Content)

	out = svc.Receive()
	if out.Success {
		fmt.Println("device said:", out.Content)
	}
}
