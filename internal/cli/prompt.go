package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/matzehuels/eleitos/pkg/integrations/tse"
	"github.com/matzehuels/eleitos/pkg/pipeline"
)

// regionOptions are the region names the elections API groups states by.
var regionOptions = []string{"SUL", "SUDESTE", "NORTE", "NORDESTE", "CENTRO-OESTE"}

// Prompter asks one question at a time.
type Prompter interface {
	Input(message, def string, validate func(string) error) (string, error)
	Confirm(message string, def bool) (bool, error)
	Select(message string, options []string, def string) (string, error)
}

// surveyPrompter asks on the terminal.
type surveyPrompter struct{}

func (surveyPrompter) Input(message, def string, validate func(string) error) (string, error) {
	var answer string
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	err := survey.AskOne(&survey.Input{Message: message, Default: def}, &answer, opts...)
	return strings.TrimSpace(answer), err
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	answer := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer)
	return answer, err
}

func (surveyPrompter) Select(message string, options []string, def string) (string, error) {
	var answer string
	prompt := &survey.Select{Message: message, Options: options}
	if def != "" {
		prompt.Default = def
	}
	err := survey.AskOne(prompt, &answer)
	return answer, err
}

// Params are the answers of one interactive run.
type Params struct {
	Year         int
	Scope        tse.Scope
	Region       string
	UF           string
	Municipality string

	Enhance bool
	Options pipeline.Options

	Cards bool
}

// collectParams asks the run questions in order. The enhancement questions
// are only asked when the user opts in.
func collectParams(p Prompter) (Params, error) {
	var params Params

	section("Coleta de dados")
	yearStr, err := p.Input("Ano da eleição (Ex: 2024):", "", validateYear)
	if err != nil {
		return params, err
	}
	params.Year, _ = strconv.Atoi(strings.TrimSpace(yearStr))

	scope, err := p.Select("Tipo da eleição:", []string{string(tse.ScopeMunicipal), string(tse.ScopeFederal)}, string(tse.ScopeMunicipal))
	if err != nil {
		return params, err
	}
	if params.Scope, err = tse.ParseScope(scope); err != nil {
		return params, err
	}

	if params.Region, err = p.Select("Região:", regionOptions, ""); err != nil {
		return params, err
	}
	params.Region = strings.ToUpper(strings.TrimSpace(params.Region))

	uf, err := p.Input("UF (Ex: SC/PR/RS/SP):", "", validateUF)
	if err != nil {
		return params, err
	}
	params.UF = strings.ToUpper(strings.TrimSpace(uf))

	if params.Municipality, err = p.Input("Nome do Município:", "", required); err != nil {
		return params, err
	}
	params.Municipality = strings.TrimSpace(params.Municipality)

	section("Processamento de imagens")
	if params.Enhance, err = p.Confirm("Deseja melhorar as fotos com IA?", false); err != nil {
		return params, err
	}
	if params.Enhance {
		iter, err := p.Input("Número de iterações de melhoria (Enter para 1):", "", validateIterations)
		if err != nil {
			return params, err
		}
		params.Options.ScaleIterations = parseIterations(iter)
		if params.Options.RemoveBackground, err = p.Confirm("Remover fundo?", false); err != nil {
			return params, err
		}
		if params.Options.MakeIDPhoto, err = p.Confirm("Processar para 3x4?", false); err != nil {
			return params, err
		}
	}

	section("Tarjetas")
	if params.Cards, err = p.Confirm("Deseja gerar tarjetas?", false); err != nil {
		return params, err
	}
	return params, nil
}

// parseIterations reads the enhancement pass count. Blank or non-numeric
// input means one pass.
func parseIterations(s string) int {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strings.ContainsAny(s, "+-") {
		return pipeline.DefaultScaleIterations
	}
	return n
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("valor obrigatório")
	}
	return nil
}

func validateYear(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1900 || n > 2100 {
		return fmt.Errorf("ano inválido: %q", s)
	}
	return nil
}

func validateUF(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return fmt.Errorf("UF deve ter duas letras: %q", s)
	}
	return nil
}

func validateIterations(s string) error {
	if n := parseIterations(s); n > pipeline.MaxScaleIterations {
		return fmt.Errorf("no máximo %d iterações", pipeline.MaxScaleIterations)
	}
	return nil
}
