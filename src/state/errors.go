package state

// The three ways a load can fail. They all end up as Failure(err) and only the
// text of Error() is shown to the user.

type PathResolutionError struct {
	Folder string
}

func (e *PathResolutionError) Error() string {
	return "file path is disappear"
}

type FileNotFoundError struct {
	// Name is the file name including the .html extension
	Name string
}

func (e *FileNotFoundError) Error() string {
	return "cannot find the file: " + e.Name
}

type EngineNavigationError struct {
	URL         string
	Description string
}

func (e *EngineNavigationError) Error() string {
	return e.Description
}
