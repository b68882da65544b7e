package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/samzong/git-auto-commit/internal/config"
	"gopkg.in/yaml.v3"
)

// PromptTemplate is the on-disk form of a custom prompt.
type PromptTemplate struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

// LoadTemplateFile reads a YAML prompt template. Files that do not parse as a
// template document are used verbatim.
func LoadTemplateFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read template file %s: %w", path, err)
	}

	var tpl PromptTemplate
	if err := yaml.Unmarshal(content, &tpl); err != nil || strings.TrimSpace(tpl.Template) == "" {
		if strings.TrimSpace(string(content)) == "" {
			return "", fmt.Errorf("template file %s is empty", path)
		}
		return string(content), nil
	}

	return tpl.Template, nil
}

// ResolveTemplate picks the prompt template for cfg: the template file when
// configured and readable, otherwise the inline combined prompt. The returned
// template is always usable; the error reports a template file that had to be
// skipped.
func ResolveTemplate(cfg *config.Config) (string, error) {
	inline := config.DefaultCombinedPrompt
	if cfg != nil && strings.TrimSpace(cfg.CombinedPrompt) != "" {
		inline = cfg.CombinedPrompt
	}

	if cfg == nil || cfg.PromptTemplateFile == "" {
		return inline, nil
	}

	tpl, err := LoadTemplateFile(cfg.PromptTemplateFile)
	if err != nil {
		return inline, err
	}
	return tpl, nil
}
