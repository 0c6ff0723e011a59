// Package fixture holds the curated safe code samples used to measure
// false positives. Each weakness class maps to a short, ordered list of
// snippets that exercise the APIs a scanner watches for that class, used
// in a way that is not vulnerable.
package fixture

import "sort"

// Fallback is returned for classes with no curated samples.
const Fallback = "pass"

// Samples is the generator's answer for one class.
type Samples struct {
	Snippets []string
	// Curated is false when Snippets is the Fallback placeholder. FP/TN
	// counts for such a class say little about the scanner.
	Curated bool
}

// safeSamples is the hand-maintained table. To extend coverage add an
// entry here; the benchmark picks it up without further changes.
var safeSamples = map[string][]string{
	"CWE-94": {
		"eval('1+1')",
		"exec('pass')",
		"import ast\nast.literal_eval('[1, 2, 3]')",
		"compile('a=1', '', 'exec')",
		"eval('abs(-1)')",
	},
	"CWE-78": {
		"import subprocess\nsubprocess.run(['ls'], shell=False)",
		"os.system('ls')",
		"subprocess.call(['ping', '127.0.0.1'])",
		"subprocess.check_call(['true'])",
		"subprocess.Popen(['echo', 'hi'])",
	},
	"CWE-502": {
		"import json\njson.loads('{\"a\": 1}')",
		"import json\njson.load(open('config.json'))",
		"import yaml\nyaml.safe_load('a: 1')",
		"import pickle\npickle.dumps({'a': 1})",
		"# Safe data usage\npass",
	},
	"CWE-22": {
		"with open('safe.txt', 'r') as f: f.read()",
		"os.path.join('/home/user', 'documents')",
		"import os\nos.path.exists('file.txt')",
		"open('/dev/null', 'w')",
		"from pathlib import Path\nPath('local.txt').open()",
	},
	"CWE-327": {
		"import hashlib\nhashlib.sha256(b'data')",
		"hashlib.sha512(b'data')",
		"import hashlib\nhashlib.new('sha256')",
		"import hmac\nhmac.new(b'key', b'msg', digestmod='sha256')",
		"import secrets\nsecrets.compare_digest('a', 'b')",
	},
	"CWE-798": {
		"password = os.getenv('DB_PASSWORD')",
		"api_key = ''",
		"token = None",
		"secret = 'REDACTED'",
		"credentials = {'user': 'admin'}",
	},
	"CWE-489": {
		"app.run(debug=False)",
		"DEBUG = False\napp.run(debug=DEBUG)",
		"app.config['DEBUG'] = False",
		"if False: print('debug')",
		"import logging\nlogging.debug('message')",
	},
	"CWE-89": {
		"cursor.execute('SELECT * FROM users WHERE id = ?', (user_id,))",
		"cursor.execute('SELECT * FROM users')",
		"db.execute('INSERT INTO logs VALUES (1)')",
		"query = 'SELECT 1'\ncursor.execute(query)",
		"params = (1,)\ncursor.execute('SELECT * FROM t WHERE id=?', params)",
	},
	"CWE-611": {
		"import xml.etree.ElementTree as ET\nET.parse('safe.xml')",
		"from lxml import etree\nparser = etree.XMLParser(resolve_entities=False)",
		"import xml.etree.ElementTree as ET\nET.fromstring('<root/>')",
		"import xml.etree.ElementTree as ET\ntree = ET.ElementTree(ET.Element('root'))",
		"import xml.etree.ElementTree as ET\nxml_data = ET.tostring(ET.Element('root'))",
	},
}

// Safe returns the safe samples for class. Unknown classes get a single
// Fallback snippet with Curated set to false. The returned slice is a copy.
func Safe(class string) Samples {
	snippets, ok := safeSamples[class]
	if !ok {
		return Samples{Snippets: []string{Fallback}}
	}
	out := make([]string, len(snippets))
	copy(out, snippets)
	return Samples{Snippets: out, Curated: true}
}

// Curated lists the classes that have hand-written samples, sorted.
func Curated() []string {
	classes := make([]string, 0, len(safeSamples))
	for c := range safeSamples {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}
