package domain

var Tables = []interface{}{
	// System
	&SysUser{},
	&SysAuthLog{},
	// Catalog
	&Product{},
}
