package stage

type Config struct {
	Root string `yaml:"root"`
}
