package display

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/bartossh/addrgen/address"
	"github.com/bartossh/addrgen/serializer"
)

const hidden = "<hidden>"

var ErrUnknownFormat = errors.New("unknown display format")

// Format is the layout an address is printed with.
type Format string

const (
	Text  Format = "text"
	Table Format = "table"
	JSON  Format = "json"
)

// Config holds configuration of the address Printer.
type Config struct {
	Format        string `yaml:"format"`         // text, table or json
	Encoding      string `yaml:"encoding"`       // hex or base58 for public id and keys
	RevealPrivate bool   `yaml:"reveal_private"` // prints private key when set, hidden otherwise
}

// Printer renders addresses to the io.Writer.
type Printer struct {
	out           io.Writer
	format        Format
	enc           serializer.Encoding
	revealPrivate bool
}

type view struct {
	PublicID   string `json:"public_id"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key,omitempty"`
	Amount     uint64 `json:"amount"`
}

// New creates new Printer or returns error if format or encoding is unknown.
func New(cfg Config, out io.Writer) (Printer, error) {
	f, err := parseFormat(cfg.Format)
	if err != nil {
		return Printer{}, err
	}
	enc, err := serializer.ParseEncoding(cfg.Encoding)
	if err != nil {
		return Printer{}, err
	}
	return Printer{out: out, format: f, enc: enc, revealPrivate: cfg.RevealPrivate}, nil
}

// Print writes the address to the output.
func (p Printer) Print(a address.Address) error {
	v := p.view(a)
	switch p.format {
	case JSON:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.out, string(raw))
		return err
	case Table:
		s, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
			{"Field", "Value"},
			{"Public ID", v.PublicID},
			{"Public Key", v.PublicKey},
			{"Private Key", p.private(v)},
			{"Amount", strconv.FormatUint(v.Amount, 10)},
		}).Srender()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.out, s)
		return err
	default:
		_, err := fmt.Fprintf(p.out, "Public ID: %s\nPublic Key: %s\nPrivate Key: %s\nAmount: %d\n",
			v.PublicID, v.PublicKey, p.private(v), v.Amount)
		return err
	}
}

// PrintPublicID writes only the encoded public id.
func (p Printer) PrintPublicID(id []byte) error {
	_, err := fmt.Fprintln(p.out, p.enc.Encode(id))
	return err
}

func (p Printer) view(a address.Address) view {
	v := view{
		PublicID:  p.enc.Encode(a.PublicID),
		PublicKey: p.enc.Encode(a.PublicKey),
		Amount:    a.Amount,
	}
	if p.revealPrivate {
		v.PrivateKey = p.enc.Encode(a.PrivateKey)
	}
	return v
}

func (p Printer) private(v view) string {
	if v.PrivateKey == "" {
		return hidden
	}
	return v.PrivateKey
}

func parseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", Text:
		return Text, nil
	case Table:
		return Table, nil
	case JSON:
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
