// Package settings loads the generator settings shared by every enum in a run.
//
// Settings are merged from, lowest precedence first: built-in defaults, an
// enumext.{yaml,toml,json} file, ENUMEXT_* environment variables and
// key=value overrides given on the command line.
package settings

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/broady/enumext/enumgen/ir"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ENUMEXT"

// ConfigName is the base name of the settings file searched for by Load.
const ConfigName = "enumext"

// Settings holds the run-wide generator settings.
type Settings struct {
	// MetadataSource is the ambient metadata source. Empty means EnumMember.
	MetadataSource string `mapstructure:"metadata_source" schema:"metadata_source" validate:"omitempty,metasource"`

	// ExtensionMembers also emits methods on the enum types themselves.
	ExtensionMembers bool `mapstructure:"extension_members" schema:"extension_members"`

	// Internal makes generated types unexported by default.
	Internal bool `mapstructure:"internal" schema:"internal"`

	// StripPackagePrefix is removed from import paths when building file paths.
	StripPackagePrefix string `mapstructure:"strip_package_prefix" schema:"strip_package_prefix"`

	// Frontmatter is added below the header of every generated file.
	Frontmatter string `mapstructure:"frontmatter" schema:"frontmatter"`

	// OutDir is the output directory.
	OutDir string `mapstructure:"out_dir" schema:"out_dir" validate:"required"`

	// Parallelism bounds concurrent enum processing. Zero means GOMAXPROCS.
	Parallelism int `mapstructure:"parallelism" schema:"parallelism" validate:"gte=0"`

	// File is the settings file that was read, if any.
	File string `mapstructure:"-" schema:"-"`
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// File is an explicit settings file. It must exist.
	File string

	// Dir is searched for enumext.{yaml,yml,toml,json} when File is empty.
	// Default: "."
	Dir string

	// Overrides are key=value pairs applied last, e.g. "metadata_source=Display".
	Overrides []string
}

// SetDefaults registers the default value of every key. Registering every key
// also makes it visible to AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("metadata_source", "")
	v.SetDefault("extension_members", false)
	v.SetDefault("internal", false)
	v.SetDefault("strip_package_prefix", "")
	v.SetDefault("frontmatter", "")
	v.SetDefault("out_dir", ".")
	v.SetDefault("parallelism", 0)
}

// Candidates returns the settings files Load looks for in dir, in the order
// they are tried. None of them needs to exist.
func Candidates(dir string) []string {
	if dir == "" {
		dir = "."
	}
	files := make([]string, 0, len(viper.SupportedExts))
	for _, ext := range viper.SupportedExts {
		files = append(files, filepath.Join(dir, ConfigName+"."+ext))
	}
	return files
}

// Load merges settings from all sources and validates the result.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read settings file %s", opts.File)
		}
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(ConfigName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read settings file")
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "decode settings")
	}
	s.File = v.ConfigFileUsed()

	if err := s.Apply(opts.Overrides...); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(false)
	d.ZeroEmpty(true)
	return d
}

// Apply sets fields from key=value pairs. Keys use the settings file names;
// dashes are accepted in place of underscores.
func (s *Settings) Apply(overrides ...string) error {
	if len(overrides) == 0 {
		return nil
	}
	values := url.Values{}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.ReplaceAll(strings.TrimSpace(key), "-", "_")
		if !ok || key == "" {
			return errors.WithHint(
				errors.Newf("invalid override %q", kv),
				"overrides have the form key=value, e.g. metadata_source=Display")
		}
		values.Set(key, value)
	}
	if err := decoder.Decode(s, values); err != nil {
		return errors.Wrap(err, "apply overrides")
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("metasource", func(fl validator.FieldLevel) bool {
		_, err := ir.ParseMetadataSource(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the settings for unknown or out-of-range values.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate settings")
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, errors.Newf("setting %s: %s", fe.Field(), formatFieldError(fe)))
	}
	return errors.Join(errs...)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "metasource":
		return "unknown metadata source " + fe.Value().(string)
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// Defaults returns the ambient configuration described by s.
func (s *Settings) Defaults() (ir.DefaultConfiguration, error) {
	src, err := ir.ParseMetadataSource(s.MetadataSource)
	if err != nil {
		return ir.DefaultConfiguration{}, err
	}
	return ir.DefaultConfiguration{
		MetadataSource:              src,
		ForceExtensionMembers:       s.ExtensionMembers,
		ForceInternalAccessModifier: s.Internal,
	}, nil
}
