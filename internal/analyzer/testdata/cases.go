package testdata

// TestCase is one Python snippet with its expected outcome for a weakness
// class.
//
// IDs follow <Classification>-<CWE>-<NNN>:
//
//	TP  vulnerable code the analyzer must flag
//	TN  safe code the analyzer must not flag
//	FP  safe code the analyzer flags today (known false positive)
//	FN  vulnerable code the analyzer misses today (known gap)
type TestCase struct {
	ID             string
	Class          string
	Classification string
	Code           string
	// Description says what the snippet does and why the outcome is right.
	Description string
	Tags        []string
}

// Vulnerable reports whether the snippet really is vulnerable, that is,
// whether a perfect analyzer would flag it.
func (tc TestCase) Vulnerable() bool {
	return tc.Classification == "TP" || tc.Classification == "FN"
}

// AllClassifications is the set of valid Classification values.
var AllClassifications = []string{"TP", "TN", "FP", "FN"}

// AllTestCases returns every case, grouped by class.
func AllTestCases() []TestCase {
	return append([]TestCase(nil), cases...)
}

// CasesFor returns the cases of one class.
func CasesFor(class string) []TestCase {
	var out []TestCase
	for _, tc := range cases {
		if tc.Class == class {
			out = append(out, tc)
		}
	}
	return out
}

var cases = []TestCase{
	// CWE-22
	{
		ID:             "TP-CWE22-001",
		Class:          "CWE-22",
		Classification: "TP",
		Code:           "path = request.args.get('file')\nwith open(path) as f:\n    data = f.read()\nreturn open(request.args['name']).read()",
		Description:    "Request parameter passed straight to open.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE22-002",
		Class:          "CWE-22",
		Classification: "TP",
		Code:           "f = open(BASE_DIR + filename)",
		Description:    "Path built by concatenating user input onto a base directory.",
	},
	{
		ID:             "TP-CWE22-003",
		Class:          "CWE-22",
		Classification: "TP",
		Code:           "return send_file(os.path.join(UPLOADS, request.args['f']))",
		Description:    "Flask send_file with a request-controlled path segment.",
		Tags:           []string{"flask"},
	},
	{
		ID:             "TN-CWE22-001",
		Class:          "CWE-22",
		Classification: "TN",
		Code:           "with open('config.json') as f:\n    cfg = json.load(f)",
		Description:    "Literal path.",
		Tags:           []string{"common-dev-operation"},
	},
	{
		ID:             "FN-CWE22-001",
		Class:          "CWE-22",
		Classification: "FN",
		Code:           "p = os.path.join(root, name)\nwith open(p) as f:\n    pass",
		Description:    "Taint through an intermediate variable needs dataflow analysis.",
		Tags:           []string{"known-gap"},
	},

	// CWE-78
	{
		ID:             "TP-CWE78-001",
		Class:          "CWE-78",
		Classification: "TP",
		Code:           "os.system('ping -c 1 ' + host)",
		Description:    "Shell command built by concatenation.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE78-002",
		Class:          "CWE-78",
		Classification: "TP",
		Code:           "subprocess.call(cmd, shell=True)",
		Description:    "subprocess with shell=True.",
	},
	{
		ID:             "TP-CWE78-003",
		Class:          "CWE-78",
		Classification: "TP",
		Code:           "os.popen(f'nslookup {domain}').read()",
		Description:    "f-string command passed to os.popen.",
	},
	{
		ID:             "TN-CWE78-001",
		Class:          "CWE-78",
		Classification: "TN",
		Code:           "subprocess.run(['ls', '-la'], check=True)",
		Description:    "Argument vector without a shell.",
		Tags:           []string{"common-dev-operation"},
	},
	{
		ID:             "TN-CWE78-002",
		Class:          "CWE-78",
		Classification: "TN",
		Code:           "os.system('clear')",
		Description:    "Constant command string.",
	},

	// CWE-89
	{
		ID:             "TP-CWE89-001",
		Class:          "CWE-89",
		Classification: "TP",
		Code:           "cursor.execute(\"SELECT * FROM users WHERE name = '%s'\" % name)",
		Description:    "Query built with % formatting.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE89-002",
		Class:          "CWE-89",
		Classification: "TP",
		Code:           "cur.execute(f\"DELETE FROM t WHERE id = {item_id}\")",
		Description:    "Query built with an f-string.",
	},
	{
		ID:             "TP-CWE89-003",
		Class:          "CWE-89",
		Classification: "TP",
		Code:           "db.execute('SELECT * FROM t WHERE a = ' + a)",
		Description:    "Query built by concatenation.",
	},
	{
		ID:             "TN-CWE89-001",
		Class:          "CWE-89",
		Classification: "TN",
		Code:           "cursor.execute('SELECT * FROM users WHERE id = %s', (user_id,))",
		Description:    "Parameterized query; %s is a placeholder, not formatting.",
		Tags:           []string{"regression"},
	},
	{
		ID:             "FN-CWE89-001",
		Class:          "CWE-89",
		Classification: "FN",
		Code:           "q = 'SELECT * FROM t WHERE a = ' + a\ncursor.execute(q)",
		Description:    "Query assembled before the execute call.",
		Tags:           []string{"known-gap"},
	},

	// CWE-94
	{
		ID:             "TP-CWE94-001",
		Class:          "CWE-94",
		Classification: "TP",
		Code:           "result = eval(user_input)",
		Description:    "eval on a variable.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE94-002",
		Class:          "CWE-94",
		Classification: "TP",
		Code:           "exec(f\"x = {payload}\")",
		Description:    "exec on an f-string.",
	},
	{
		ID:             "TN-CWE94-001",
		Class:          "CWE-94",
		Classification: "TN",
		Code:           "value = ast.literal_eval(text)",
		Description:    "literal_eval only accepts literals.",
	},
	{
		ID:             "TN-CWE94-002",
		Class:          "CWE-94",
		Classification: "TN",
		Code:           "result = eval('1 + 1')",
		Description:    "eval on a constant string.",
	},

	// CWE-327
	{
		ID:             "TP-CWE327-001",
		Class:          "CWE-327",
		Classification: "TP",
		Code:           "digest = hashlib.md5(password.encode()).hexdigest()",
		Description:    "MD5 used for password hashing.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE327-002",
		Class:          "CWE-327",
		Classification: "TP",
		Code:           "cipher = DES.new(key, DES.MODE_ECB)",
		Description:    "DES cipher.",
	},
	{
		ID:             "TP-CWE327-003",
		Class:          "CWE-327",
		Classification: "TP",
		Code:           "h = hashlib.new('sha1')",
		Description:    "SHA-1 through hashlib.new.",
	},
	{
		ID:             "TN-CWE327-001",
		Class:          "CWE-327",
		Classification: "TN",
		Code:           "digest = hashlib.sha256(data).hexdigest()",
		Description:    "SHA-256.",
	},

	// CWE-489
	{
		ID:             "TP-CWE489-001",
		Class:          "CWE-489",
		Classification: "TP",
		Code:           "app.run(host='0.0.0.0', debug=True)",
		Description:    "Flask debug server.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE489-002",
		Class:          "CWE-489",
		Classification: "TP",
		Code:           "app.config['DEBUG'] = True",
		Description:    "Debug flag in app config.",
	},
	{
		ID:             "TP-CWE489-003",
		Class:          "CWE-489",
		Classification: "TP",
		Code:           "DEBUG = True",
		Description:    "Django settings debug flag.",
		Tags:           []string{"django"},
	},
	{
		ID:             "TN-CWE489-001",
		Class:          "CWE-489",
		Classification: "TN",
		Code:           "app.run(debug=False)",
		Description:    "Debug disabled.",
	},

	// CWE-502
	{
		ID:             "TP-CWE502-001",
		Class:          "CWE-502",
		Classification: "TP",
		Code:           "obj = pickle.loads(request.data)",
		Description:    "Unpickling request data.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE502-002",
		Class:          "CWE-502",
		Classification: "TP",
		Code:           "config = yaml.load(stream)",
		Description:    "yaml.load without a Loader.",
	},
	{
		ID:             "TP-CWE502-003",
		Class:          "CWE-502",
		Classification: "TP",
		Code:           "data = yaml.load(stream, Loader=yaml.Loader)",
		Description:    "yaml.load with the full Loader.",
	},
	{
		ID:             "TN-CWE502-001",
		Class:          "CWE-502",
		Classification: "TN",
		Code:           "config = yaml.load(stream, Loader=yaml.SafeLoader)",
		Description:    "SafeLoader.",
		Tags:           []string{"regression"},
	},
	{
		ID:             "TN-CWE502-002",
		Class:          "CWE-502",
		Classification: "TN",
		Code:           "payload = json.loads(body)",
		Description:    "JSON is not code.",
	},

	// CWE-611
	{
		ID:             "TP-CWE611-001",
		Class:          "CWE-611",
		Classification: "TP",
		Code:           "parser = etree.XMLParser(resolve_entities=True)",
		Description:    "lxml parser resolving entities.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE611-002",
		Class:          "CWE-611",
		Classification: "TP",
		Code:           "doc = xml.dom.minidom.parseString(body)",
		Description:    "minidom on untrusted input.",
	},
	{
		ID:             "TP-CWE611-003",
		Class:          "CWE-611",
		Classification: "TP",
		Code:           "parser.setFeature(feature_external_ges, True)",
		Description:    "SAX external general entities enabled.",
	},
	{
		ID:             "TN-CWE611-001",
		Class:          "CWE-611",
		Classification: "TN",
		Code:           "tree = defusedxml.ElementTree.parse(path)",
		Description:    "defusedxml.",
	},

	// CWE-798
	{
		ID:             "TP-CWE798-001",
		Class:          "CWE-798",
		Classification: "TP",
		Code:           "password = 'hunter22'",
		Description:    "Literal password.",
		Tags:           []string{"canonical"},
	},
	{
		ID:             "TP-CWE798-002",
		Class:          "CWE-798",
		Classification: "TP",
		Code:           "API_KEY = \"sk_live_51H8x2\"",
		Description:    "Literal API key.",
	},
	{
		ID:             "TN-CWE798-001",
		Class:          "CWE-798",
		Classification: "TN",
		Code:           "password = os.environ['DB_PASSWORD']",
		Description:    "Secret from the environment.",
		Tags:           []string{"common-dev-operation"},
	},
	{
		ID:             "TN-CWE798-002",
		Class:          "CWE-798",
		Classification: "TN",
		Code:           "token = '<your-token>'",
		Description:    "Placeholder value.",
		Tags:           []string{"regression"},
	},
	{
		ID:             "FP-CWE798-001",
		Class:          "CWE-798",
		Classification: "FP",
		Code:           "secret = 'REDACTED'",
		Description:    "Redaction marker looks like a literal secret.",
		Tags:           []string{"known-fp"},
	},
}
