// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ik5/lowlatency/audio"
	"github.com/ik5/lowlatency/formats/mp3"
)

func Example_decode() {
	file, err := os.Open("music/theme.mp3")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer file.Close()

	src, err := mp3.Decoder{}.Decode(file)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	pcm, err := audio.ReadAll(context.Background(), src)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("%d Hz, %d channels, %v\n", pcm.SampleRate, pcm.Channels, pcm.Duration())
}
