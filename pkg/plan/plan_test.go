package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validPlan = `
schemaVersion: "1.0.0"
name: php-pdf-worker
steps:
  - name: refresh package index
    command: apt-get
    args: ["update"]
  - name: install runtime
    command: apt-get
    args: ["install", "-y", "php-fpm"]
    env:
      DEBIAN_FRONTEND: noninteractive
  - name: enable optional module
    command: phpenmod
    args: ["imagick"]
    bestEffort: true
artifacts:
  - name: phantomjs
    url: https://artifacts.example.com/phantomjs-2.1.1-linux-x86_64.tar.gz
    sha256: "86dd9a4bf4aee45f1a84c9f61cf1947c1d6dce9b9e8d2a907105da7852460d2f"
    destination: /opt/phantomjs
    archive: true
    binLinks:
      - phantomjs-2.1.1-linux-x86_64/bin/phantomjs
`

func TestParseBytes(t *testing.T) {
	p, err := ParseBytes([]byte(validPlan))
	require.NoError(t, err)

	assert.Equal(t, "php-pdf-worker", p.Name)
	require.Len(t, p.Steps, 3)
	assert.Equal(t, "refresh package index", p.Steps[0].Name)
	assert.True(t, p.Steps[2].BestEffort)
	assert.Equal(t, "noninteractive", p.Steps[1].Env["DEBIAN_FRONTEND"])

	require.Len(t, p.Artifacts, 1)
	assert.True(t, p.Artifacts[0].Archive)
	assert.Equal(t, "/opt/phantomjs", p.Artifacts[0].Destination)
}

func TestParseBytes_UnknownField(t *testing.T) {
	doc := `
schemaVersion: "1.0.0"
name: test
steps:
  - name: a
    command: "true"
    retries: 3
`
	_, err := ParseBytes([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to unmarshal plan")
}

func TestValidate(t *testing.T) {
	for _, tt := range []struct {
		name    string
		mutate  func(p *Plan)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(p *Plan) {},
			wantErr: "",
		},
		{
			name:    "missing name",
			mutate:  func(p *Plan) { p.Name = "" },
			wantErr: "plan has no name",
		},
		{
			name:    "missing schema version",
			mutate:  func(p *Plan) { p.SchemaVersion = "" },
			wantErr: "plan has no schemaVersion",
		},
		{
			name:    "unsupported schema version",
			mutate:  func(p *Plan) { p.SchemaVersion = "2.1.0" },
			wantErr: "unsupported schemaVersion",
		},
		{
			name:    "garbage schema version",
			mutate:  func(p *Plan) { p.SchemaVersion = "not-a-version" },
			wantErr: "invalid schemaVersion",
		},
		{
			name:    "step without command",
			mutate:  func(p *Plan) { p.Steps[0].Command = "" },
			wantErr: "has no command",
		},
		{
			name:    "duplicate step name",
			mutate:  func(p *Plan) { p.Steps[1].Name = p.Steps[0].Name },
			wantErr: "duplicate step name",
		},
		{
			name:    "relative artifact destination",
			mutate:  func(p *Plan) { p.Artifacts[0].Destination = "opt/phantomjs" },
			wantErr: "is not absolute",
		},
		{
			name:    "unsupported scheme",
			mutate:  func(p *Plan) { p.Artifacts[0].URL = "ftp://example.com/file.tgz" },
			wantErr: "unsupported url scheme",
		},
		{
			name: "bin links on plain artifact",
			mutate: func(p *Plan) {
				p.Artifacts[0].Archive = false
			},
			wantErr: "declares binLinks but is not an archive",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseBytes([]byte(validPlan))
			require.NoError(t, err)
			tt.mutate(p)
			err = p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStep_ExitCodeExpected(t *testing.T) {
	step := Step{Name: "default"}
	assert.True(t, step.ExitCodeExpected(0))
	assert.False(t, step.ExitCodeExpected(1))

	step = Step{Name: "custom", ExpectedExitCodes: []int{0, 100}}
	assert.True(t, step.ExitCodeExpected(100))
	assert.False(t, step.ExitCodeExpected(1))
}
