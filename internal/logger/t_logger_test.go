package logger

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_logger01(tst *testing.T) {

	chk.PrintTitle("logger01. levels and tags")

	var rec Recorder
	l := New(Warn)
	l.SetSink(rec.Sink())

	child := l.With("pier #1").With("base")
	child.Infof("dropped")
	child.Warnf("spring row %q missing", "1")
	l.Errorf("top level")

	chk.Int(tst, "records", len(rec.Records), 2)
	chk.String(tst, rec.Records[0].Tag, "pier #1/base")
	chk.String(tst, rec.Records[0].Msg, `spring row "1" missing`)
	chk.String(tst, rec.Records[1].Tag, "")

	l.SetLevel(Trace)
	child.Tracef("now visible")
	chk.Int(tst, "trace", rec.Count(Trace), 1)
	if !rec.Contains(Warn, "missing") {
		tst.Errorf("warning should be recorded")
	}
}

func Test_logger02(tst *testing.T) {

	chk.PrintTitle("logger02. parse level")

	chk.Ints(tst, "levels",
		[]int{int(ParseLevel("warning")), int(ParseLevel("OK")), int(ParseLevel("quiet")), int(ParseLevel("???"))},
		[]int{int(Warn), int(Success), int(Off), int(Info)})
	chk.String(tst, Success.String(), "OK")

	var rec Recorder
	l := Discard()
	l.SetSink(rec.Sink())
	l.Errorf("nothing")
	chk.Int(tst, "discarded", len(rec.Records), 0)
}
