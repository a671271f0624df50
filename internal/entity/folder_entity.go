package entity

type Folder struct {
	Id    string
	Name  string
	Color string
	Icon  string
}
