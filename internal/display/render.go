package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/pixil98/go-adventure/internal/game"
)

var funcs = func() template.FuncMap {
	f := sprig.TxtFuncMap()
	f["title"] = Title
	return f
}()

var (
	roomTmpl = template.Must(template.New("room").Funcs(funcs).Parse(strings.TrimSpace(`
== {{ .Name }} ==
{{ .Description }}
{{- with .Obstacle }}
{{ . }}
{{- end }}
{{- if .Items }}
Items here: {{ join ", " .Items }}
{{- end }}
{{- if .Fixtures }}
You also see: {{ join ", " .Fixtures }}
{{- end }}
Exits: {{ if .Exits }}{{ join ", " .Exits }}{{ else }}none{{ end }}
`)))

	inventoryTmpl = template.Must(template.New("inventory").Funcs(funcs).Parse(strings.TrimSpace(`
{{- if not .Items }}You are not carrying anything.
{{- else }}You are carrying:
{{- range .Items }}
 - {{ .Name }} (uses left: {{ .UsesRemaining }})
{{- end }}
{{- end }}
Weight: {{ printf "%.1f" .Weight }}/{{ printf "%.1f" .Max }}
`)))

	statusTmpl = template.Must(template.New("status").Funcs(funcs).Parse(
		`{{ .Name }} | Health: {{ .Health }} ({{ title .Status }}) | Score: {{ .Score }} ({{ title .Rank }})`,
	))

	attackTmpl = template.Must(template.New("attack").Funcs(funcs).Parse(
		`The {{ .Monster }} {{ default "attacks" .Message }}! You take {{ .Damage }} damage.`,
	))
)

type roomView struct {
	Name        string
	Description string
	Obstacle    string
	Items       []string
	Fixtures    []string
	Exits       []string
}

// RenderRoom describes what the player sees on entering or looking.
func RenderRoom(r *game.Room) (string, error) {
	v := roomView{
		Name:        r.Name,
		Description: r.Description,
	}
	if r.HasActiveObstacle() {
		v.Obstacle = r.Obstacle.CurrentDescription()
	}
	for _, i := range r.Items {
		v.Items = append(v.Items, i.Name)
	}
	for _, f := range r.Fixtures {
		v.Fixtures = append(v.Fixtures, f.Name)
	}
	for _, d := range game.Directions {
		switch e := r.Exit(d); {
		case e > 0:
			v.Exits = append(v.Exits, d.Name())
		case e < 0:
			v.Exits = append(v.Exits, d.Name()+" (blocked)")
		}
	}

	return render(roomTmpl, v)
}

// RenderInventory lists carried items with their remaining uses.
func RenderInventory(p *game.Player) (string, error) {
	return render(inventoryTmpl, struct {
		Items  []*game.Item
		Weight float64
		Max    float64
	}{
		Items:  p.Inventory,
		Weight: p.CarriedWeight(),
		Max:    game.MaxCarryWeight,
	})
}

// RenderStatus is the one-line health and score summary.
func RenderStatus(p *game.Player) (string, error) {
	return render(statusTmpl, struct {
		Name   string
		Health int
		Status string
		Score  string
		Rank   string
	}{
		Name:   p.Name,
		Health: p.Health,
		Status: p.HealthStatus().String(),
		Score:  fmt.Sprintf("%g", p.Score),
		Rank:   p.Rank().String(),
	})
}

// RenderAttack reports one monster attack.
func RenderAttack(monster, message string, damage int) (string, error) {
	return render(attackTmpl, struct {
		Monster string
		Message string
		Damage  int
	}{
		Monster: monster,
		Message: message,
		Damage:  damage,
	})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := t.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing %s template: %w", t.Name(), err)
	}
	return Wrap(buf.String()), nil
}
