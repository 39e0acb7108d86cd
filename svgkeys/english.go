package svgkeys

// EnglishStenotype is the table of the English stenotype system,
// matching the regions of svgregion.DefaultLayout.
var EnglishStenotype = KeyTable{
	{"#", "num", "num_n"},
	{"S-", "ls", "ls_n"},
	{"T-", "lt", "lt_n"},
	{"K-", "lk", "lk_n"},
	{"P-", "lp", "lp_n"},
	{"W-", "lw", "lw_n"},
	{"H-", "lh", "lh_n"},
	{"R-", "lr", "lr_n"},
	{"A-", "la", "la_n"},
	{"O-", "lo", "lo_n"},
	{"*", "star", "star_n"},
	{"-E", "re", "re_n"},
	{"-U", "ru", "ru_n"},
	{"-F", "rf", "rf_n"},
	{"-R", "rr", "rr_n"},
	{"-P", "rp", "rp_n"},
	{"-B", "rb", "rb_n"},
	{"-L", "rl", "rl_n"},
	{"-G", "rg", "rg_n"},
	{"-T", "rt", "rt_n"},
	{"-S", "rs", "rs_n"},
	{"-D", "rd", "rd_n"},
	{"-Z", "rz", "rz_n"},
}
