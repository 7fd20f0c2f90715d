package taxonomy

import "sync"

var defaultLists = map[Category][]string{
	Programming: {
		"java", "python", "javascript", "typescript", "c++", "c#", "c", "go", "rust", "php", "ruby",
		"kotlin", "swift", "scala", "r", "matlab", "perl", "shell", "bash", "powershell", "vba",
		"objective-c", "dart", "groovy", "lua", "haskell", "erlang", "clojure", "f#", "cobol", "fortran",
	},
	Frameworks: {
		"react", "angular", "vue", "svelte", "express", "flask", "django", "spring", "spring boot",
		"nodejs", "node.js", "laravel", "symfony", "codeigniter", "rails", "ruby on rails", "asp.net",
		".net", "dotnet", "hibernate", "mybatis", "jpa", "entity framework", "sequelize", "mongoose",
		"redux", "mobx", "rxjs", "jquery", "bootstrap", "tailwind", "material-ui", "ant design",
		"electron", "react native", "flutter", "xamarin", "ionic", "cordova", "phonegap",
	},
	Database: {
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra", "oracle", "sql server",
		"sqlite", "mariadb", "dynamodb", "firestore", "couchdb", "neo4j", "influxdb", "clickhouse",
		"hbase", "bigquery", "snowflake", "redshift", "athena", "aurora", "cosmos db",
	},
	Cloud: {
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "jenkins", "terraform", "ansible",
		"chef", "puppet", "vagrant", "openshift", "heroku", "netlify", "vercel", "cloudflare",
		"s3", "ec2", "lambda", "api gateway", "cloudformation", "cloud functions", "app engine",
		"cloud storage", "cloud sql", "iam", "vpc", "load balancer", "cdn", "route 53",
	},
	DataScience: {
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras", "opencv", "nltk",
		"spacy", "matplotlib", "seaborn", "plotly", "jupyter", "anaconda", "spark", "hadoop",
		"kafka", "airflow", "dask", "xgboost", "lightgbm", "catboost", "tableau", "power bi",
		"qlik", "looker", "r studio", "sas", "spss", "stata", "machine learning", "deep learning",
		"neural networks", "nlp", "computer vision", "data mining", "big data", "etl",
	},
	Mobile: {
		"android", "ios", "react native", "flutter", "xamarin", "ionic", "cordova", "phonegap",
		"swift", "objective-c", "kotlin", "java android", "android studio", "xcode", "firebase",
		"core data", "realm", "sqlite mobile", "push notifications", "in-app purchases",
	},
	Testing: {
		"junit", "testng", "mockito", "selenium", "cypress", "jest", "mocha", "chai", "jasmine",
		"karma", "protractor", "cucumber", "postman", "insomnia", "swagger", "rest assured",
		"pytest", "unittest", "robot framework", "jmeter", "loadrunner", "gatling", "k6",
	},
	DevOps: {
		"git", "github", "gitlab", "bitbucket", "svn", "mercurial", "jenkins", "bamboo", "teamcity",
		"azure devops", "circleci", "travis ci", "github actions", "docker", "podman", "kubernetes",
		"helm", "istio", "prometheus", "grafana", "elk stack", "splunk", "datadog", "new relic",
	},
	Design: {
		"photoshop", "illustrator", "sketch", "figma", "adobe xd", "invision", "zeplin", "principle",
		"framer", "after effects", "premiere pro", "canva", "gimp", "inkscape", "blender", "maya",
		"3ds max", "autocad", "solidworks", "ui/ux", "user experience", "user interface", "wireframing",
		"prototyping", "responsive design", "accessibility", "usability testing",
	},
	ProjectManagement: {
		"jira", "confluence", "trello", "asana", "monday.com", "notion", "slack", "microsoft teams",
		"zoom", "agile", "scrum", "kanban", "waterfall", "lean", "six sigma", "pmp", "prince2",
		"project management", "product management", "stakeholder management", "risk management",
	},
	Security: {
		"owasp", "burp suite", "metasploit", "nmap", "wireshark", "kali linux", "penetration testing",
		"vulnerability assessment", "security audit", "encryption", "ssl/tls", "oauth", "jwt",
		"saml", "ldap", "active directory", "iam", "firewall", "intrusion detection", "siem",
	},
}

var defaultAliases = map[string]string{
	"js":    "javascript",
	"ts":    "typescript",
	"css3":  "css",
	"html5": "html",
	"ui":    "user interface",
	"ux":    "user experience",
	"db":    "database",
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the built-in taxonomy, constructed on first use
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := New(defaultLists, defaultAliases)
		if err != nil {
			panic(err)
		}
		defaultTax = t
	})
	return defaultTax
}
