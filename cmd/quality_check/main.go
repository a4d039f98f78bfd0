// Command quality_check runs the repository's formatting, vet, test,
// lint and build gates, plus a vectorizer smoke run.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"sketchvec/internal/config"
	"sketchvec/internal/edges/native"
	"sketchvec/internal/logger"
	"sketchvec/internal/pipeline"
)

const (
	ProjectName = "sketchvec"
	ColorGreen  = "\033[0;32m"
	ColorRed    = "\033[0;31m"
	ColorYellow = "\033[1;33m"
	ColorReset  = "\033[0m"
)

var goDirective = regexp.MustCompile(`(?m)^go (\d+)\.(\d+)`)
var goVersion = regexp.MustCompile(`go(\d+)\.(\d+)`)

type QualityChecker struct {
	checksPassed int
	checksFailed int
	gopath       string
}

func main() {
	qc := &QualityChecker{}

	root := &cobra.Command{
		Use:          "quality_check",
		Short:        "Run sketchvec quality gates",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			gopath, err := qc.runCommand("go", "env", "GOPATH")
			if err != nil {
				return fmt.Errorf("could not determine GOPATH: %w", err)
			}
			qc.gopath = strings.TrimSpace(gopath)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			qc.generateSummary()
		},
	}

	root.AddCommand(
		qc.command("check", "Every gate including staticcheck and govulncheck", qc.runAllChecks),
		qc.command("fast", "Format, vet, tests and build", qc.runFastChecks),
		qc.command("format", "gofmt only", qc.checkFormatting),
		qc.command("smoke", "Vectorize a generated image with the native backend", qc.smokeTest),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
	if qc.checksFailed > 0 {
		os.Exit(1)
	}
}

func (qc *QualityChecker) command(use, short string, run func()) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run:   func(*cobra.Command, []string) { run() },
	}
}

func (qc *QualityChecker) runAllChecks() {
	qc.validateEnvironment()
	qc.ensureTools()
	qc.checkFormatting()
	qc.runCoreChecks()
	qc.runExternalTools()
	qc.checkBuild()
	qc.smokeTest()
}

func (qc *QualityChecker) runFastChecks() {
	qc.validateEnvironment()
	qc.checkFormatting()
	qc.runCoreChecks()
	qc.checkBuild()
}

func (qc *QualityChecker) validateEnvironment() {
	fmt.Println("Validating environment...")

	content, err := os.ReadFile("go.mod")
	if err != nil {
		qc.fail("go.mod not found")
		return
	}
	qc.success("go.mod exists")

	if name := moduleName(content); name != ProjectName {
		qc.fail(fmt.Sprintf("Module name mismatch: expected '%s', got '%s'", ProjectName, name))
	} else {
		qc.success(fmt.Sprintf("Module name matches project ('%s')", name))
	}

	output, err := qc.runCommand("go", "version")
	if err != nil {
		qc.fail("Go not found")
		return
	}

	have, okHave := parseVersion(goVersion, output)
	want, okWant := parseVersion(goDirective, string(content))
	switch {
	case !okHave || !okWant:
		qc.fail("Unable to parse Go versions")
	case have[0] < want[0] || (have[0] == want[0] && have[1] < want[1]):
		qc.fail(fmt.Sprintf("Go %d.%d or newer required, found %d.%d", want[0], want[1], have[0], have[1]))
	default:
		qc.success(fmt.Sprintf("Go %d.%d satisfies go.mod (%d.%d)", have[0], have[1], want[0], want[1]))
	}
}

func (qc *QualityChecker) ensureTools() {
	fmt.Println("Ensuring tools are available...")

	tools := []struct {
		name       string
		installCmd []string
	}{
		{"staticcheck", []string{"go", "install", "honnef.co/go/tools/cmd/staticcheck@latest"}},
		{"govulncheck", []string{"go", "install", "golang.org/x/vuln/cmd/govulncheck@latest"}},
	}

	for _, tool := range tools {
		if qc.fileExists(qc.toolPath(tool.name)) {
			qc.success(fmt.Sprintf("%s is available", tool.name))
			continue
		}
		qc.warn(fmt.Sprintf("%s not found, installing...", tool.name))
		if err := qc.runCommandSilent(tool.installCmd[0], tool.installCmd[1:]...); err != nil {
			qc.fail(fmt.Sprintf("Failed to install %s", tool.name))
		} else {
			qc.success(fmt.Sprintf("%s installed", tool.name))
		}
	}
}

func (qc *QualityChecker) checkFormatting() {
	fmt.Println("Checking code formatting...")

	output, err := qc.runCommand("gofmt", "-l", "cmd", "internal")
	if err != nil {
		qc.fail("gofmt check failed")
		return
	}

	unformatted := strings.TrimSpace(output)
	if unformatted == "" {
		qc.success("All Go files formatted")
		return
	}
	files := strings.Split(unformatted, "\n")
	qc.fail(fmt.Sprintf("Unformatted files found: %s", strings.Join(files, ", ")))
	fmt.Printf("   Run: gofmt -w %s\n", strings.Join(files, " "))
}

func (qc *QualityChecker) runCoreChecks() {
	fmt.Println("Running core quality checks...")

	checks := []struct {
		name string
		args []string
	}{
		{"go vet", []string{"go", "vet", "./..."}},
		{"tests with race detection", []string{"go", "test", "-race", "-short", "./..."}},
		{"dependency management", []string{"go", "mod", "tidy", "-diff"}},
		{"module verification", []string{"go", "mod", "verify"}},
	}

	for _, check := range checks {
		if err := qc.runCommandSilent(check.args[0], check.args[1:]...); err != nil {
			qc.fail(fmt.Sprintf("%s failed", check.name))
		} else {
			qc.success(fmt.Sprintf("%s passed", check.name))
		}
	}
}

func (qc *QualityChecker) runExternalTools() {
	fmt.Println("Running external tools...")

	runs := []struct {
		tool    string
		args    []string
		failMsg string
		okMsg   string
	}{
		{"staticcheck", []string{"-checks=all,-SA1019,-ST1000", "./..."}, "staticcheck found issues:", "staticcheck passed"},
		{"govulncheck", []string{"./..."}, "Security vulnerabilities detected:", "No security vulnerabilities found"},
	}

	for _, r := range runs {
		path := qc.toolPath(r.tool)
		if !qc.fileExists(path) {
			qc.warn(r.tool + " not available")
			continue
		}
		output, err := qc.runCommand(path, r.args...)
		if err != nil {
			qc.fail(r.failMsg)
			if strings.TrimSpace(output) != "" {
				fmt.Print(output)
			}
			continue
		}
		qc.success(r.okMsg)
	}
}

func (qc *QualityChecker) checkBuild() {
	fmt.Println("Verifying build...")

	// The noopencv build links only the native backend and must not need opencv4.
	for _, target := range []struct{ pkg, tags string }{
		{"./cmd/sketchvec", ""},
		{"./cmd/sketchview", ""},
		{"./cmd/sketchvec", "noopencv"},
	} {
		label := target.pkg
		if target.tags != "" {
			label += " (-tags " + target.tags + ")"
		}
		out := filepath.Join(os.TempDir(), "qc-"+filepath.Base(target.pkg))
		args := []string{"build", "-o", out}
		if target.tags != "" {
			args = append(args, "-tags", target.tags)
		}
		if err := qc.runCommandSilent("go", append(args, target.pkg)...); err != nil {
			qc.fail(fmt.Sprintf("Build failed: %s", label))
			continue
		}
		os.Remove(out)
		qc.success(fmt.Sprintf("Build successful: %s", label))
	}
}

// smokeTest draws a ring and expects the default pipeline to find strokes
// for it and none for a blank canvas.
func (qc *QualityChecker) smokeTest() {
	fmt.Println("Running vectorizer smoke test...")

	v := pipeline.NewVectorizer(native.New(logger.NewNop()), logger.NewNop())
	for _, tc := range []struct {
		name     string
		ink      bool
		nonEmpty bool
	}{
		{"ring", true, true},
		{"blank", false, false},
	} {
		data, err := smokeImage(tc.ink)
		if err != nil {
			qc.fail(fmt.Sprintf("smoke %s: render fixture: %v", tc.name, err))
			continue
		}
		set, err := v.Vectorize(data, config.Default())
		switch {
		case err != nil:
			qc.fail(fmt.Sprintf("smoke %s: %v", tc.name, err))
		case set.IsEmpty() == tc.nonEmpty:
			qc.fail(fmt.Sprintf("smoke %s: unexpected stroke count %d", tc.name, set.Len()))
		default:
			qc.success(fmt.Sprintf("smoke %s: %d strokes, %d points", tc.name, set.Len(), set.PointCount()))
		}
	}
}

func smokeImage(ink bool) ([]byte, error) {
	dc := gg.NewContext(128, 128)
	defer dc.Close()

	dc.ClearWithColor(gg.White)
	if ink {
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(6)
		dc.DrawCircle(64, 64, 40)
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (qc *QualityChecker) toolPath(name string) string {
	return filepath.Join(qc.gopath, "bin", name)
}

func (qc *QualityChecker) success(message string) {
	fmt.Printf("%s✓%s %s\n", ColorGreen, ColorReset, message)
	qc.checksPassed++
}

func (qc *QualityChecker) fail(message string) {
	fmt.Printf("%s✗%s %s\n", ColorRed, ColorReset, message)
	qc.checksFailed++
}

func (qc *QualityChecker) warn(message string) {
	fmt.Printf("%s⚠%s %s\n", ColorYellow, ColorReset, message)
}

func (qc *QualityChecker) generateSummary() {
	fmt.Println("\n==================================")
	fmt.Println("Quality Check Summary")
	fmt.Println("==================================")
	fmt.Printf("Passed: %d\n", qc.checksPassed)
	fmt.Printf("Failed: %d\n\n", qc.checksFailed)

	if qc.checksFailed == 0 {
		fmt.Printf("%sAll quality checks passed%s\n", ColorGreen, ColorReset)
	} else {
		fmt.Printf("%s%d quality checks failed%s\n", ColorRed, qc.checksFailed, ColorReset)
	}
}

func (qc *QualityChecker) fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func (qc *QualityChecker) runCommand(command string, args ...string) (string, error) {
	output, err := exec.Command(command, args...).CombinedOutput()
	return string(output), err
}

func (qc *QualityChecker) runCommandSilent(command string, args ...string) error {
	return exec.Command(command, args...).Run()
}

func moduleName(gomod []byte) string {
	for _, line := range strings.Split(string(gomod), "\n") {
		parts := strings.Fields(line)
		if len(parts) >= 2 && parts[0] == "module" {
			return parts[1]
		}
	}
	return ""
}

func parseVersion(re *regexp.Regexp, s string) ([2]int, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 3 {
		return [2]int{}, false
	}
	major, err1 := strconv.Atoi(m[1])
	minor, err2 := strconv.Atoi(m[2])
	return [2]int{major, minor}, err1 == nil && err2 == nil
}
