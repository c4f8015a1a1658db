// yukbul-classify reads chat messages as JSON lines on stdin and prints one
// verdict per line. With -search the admitted messages are kept in memory and
// the route result is printed after the input is drained.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"yukbul/internal/core/extract"
	"yukbul/internal/core/gazetteer"
	"yukbul/internal/platform/logger"
	"yukbul/internal/services/listings/domain"
	lsvc "yukbul/internal/services/listings/service"
)

type verdictLine struct {
	Line int `json:"line"`
	domain.IntakeResult
}

func main() {
	var (
		fSearch    = flag.String("search", "", "origin[,destination] to search after intake")
		fPhoneMode = flag.String("phone-mode", string(extract.PhoneTolerant), "phone recognizer: strict | tolerant | loose")
		fBlacklist = flag.String("blacklist", "", "comma separated banned phrases and numbers")
		fLimit     = flag.Int("limit", 50, "maximum listings printed for -search")
		fQuiet     = flag.Bool("quiet", false, "print only the search result")
	)
	flag.Parse()

	// stdout carries the verdicts
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	logger.Init(opt)
	l := logger.Named("classify")

	svc, err := newService(*fPhoneMode, splitCSV(*fBlacklist), *fLimit)
	if err != nil {
		l.Fatal().Err(err).Msg("setup failed")
	}

	out := json.NewEncoder(os.Stdout)
	n, admitted, err := run(context.Background(), os.Stdin, svc, func(v verdictLine) {
		if !*fQuiet {
			_ = out.Encode(v)
		}
	})
	if err != nil {
		l.Fatal().Err(err).Int("line", n).Msg("read failed")
	}
	l.Info().Int("lines", n).Int("admitted", admitted).Msg("classified")

	if *fSearch == "" {
		return
	}
	origin, dest, _ := strings.Cut(*fSearch, ",")
	res, err := svc.Search(context.Background(), domain.SearchInput{
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(dest),
		Limit:       *fLimit,
	})
	if err != nil {
		l.Fatal().Err(err).Str("search", *fSearch).Msg("search failed")
	}
	_ = out.Encode(res)
}

func newService(phoneMode string, blacklist []string, limit int) (*lsvc.Service, error) {
	mode, err := extract.ParsePhoneMode(phoneMode)
	if err != nil {
		return nil, err
	}
	gz, err := gazetteer.Load()
	if err != nil {
		return nil, err
	}
	ext := extract.NewExtractor(gz)
	return lsvc.New(lsvc.Deps{
		Store:      lsvc.NewStore(ext, lsvc.WithStoreLogger(*logger.Named("store"))),
		Classifier: extract.NewClassifier(ext, extract.NewBlacklist(blacklist...), extract.WithPhoneMode(mode)),
		Gazetteer:  gz,
		Log:        *logger.Named("classify"),
	}, lsvc.Config{SearchLimit: limit}), nil
}

// run classifies every line of r. A line that is not a JSON object is taken
// as the message text itself.
func run(ctx context.Context, r io.Reader, svc *lsvc.Service, emit func(verdictLine)) (int, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	n, admitted := 0, 0
	for sc.Scan() {
		n++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var in domain.IntakeInput
		if !strings.HasPrefix(raw, "{") || json.Unmarshal([]byte(raw), &in) != nil {
			in = domain.IntakeInput{Text: raw}
		}
		if strings.TrimSpace(in.Text) == "" {
			continue
		}
		if in.ID == "" {
			in.ID = fmt.Sprintf("line-%d", n)
		}

		res, err := svc.Intake(ctx, in)
		if err != nil {
			return n, admitted, err
		}
		if res.Admitted {
			admitted++
		}
		emit(verdictLine{Line: n, IntakeResult: res})
	}
	return n, admitted, sc.Err()
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
