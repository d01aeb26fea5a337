package native

// Loader binds a native library so later calls can use it.
type Loader interface {
	Load(path string) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) error

func (f LoaderFunc) Load(path string) error {
	return f(path)
}
