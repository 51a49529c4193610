package logo

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// Display prints the program banner to w.
// Pass os.Stderr so the banner never mixes with printed addresses.
func Display(w io.Writer) {
	s, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Addr", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("gen", pterm.FgLightMagenta.ToStyle())).Srender()
	fmt.Fprintln(w, pterm.DefaultCenter.Sprint(s))
	fmt.Fprintln(w, pterm.DefaultCenter.WithCenterEachLineSeparately().
		Sprint("Wallet address generator\ned25519 keys with a hashed public id."))
}
