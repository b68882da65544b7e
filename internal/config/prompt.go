package config

// DefaultCombinedPrompt asks the external tool for branch names and commit
// messages in one call. It uses {stats}, {file_summary}, {diff} and {date};
// custom templates may also use {files}.
const DefaultCombinedPrompt = `You are an expert at writing Git branch names and commit messages.
Analyze the staged changes below and propose names for a new branch and messages for the commit.

Change statistics:
{stats}

Files (with detected type):
{file_summary}

Diff:
` + "```" + `
{diff}
` + "```" + `

Respond using exactly this structure and nothing else:

[BRANCHES]
<branch name 1>
<branch name 2>
<branch name 3>
[COMMITS]
<type>: <short summary>

<optional body explaining what changed and why>

<type>: <short summary>

<type>: <short summary>

Rules:
1. Branch names use the form "<type>/<short-description>-{date}", lowercase words joined by hyphens,
   where type is one of feature, fix, refactor, docs, test, chore, config.
2. Branch names must not contain spaces or any of ~ ^ : ? * [ ] \.
3. Each commit message starts a new line with "<type>: " where type is one of
   feat, fix, docs, style, refactor, perf, test, chore, build, ci. Do not add a scope in parentheses.
4. Keep each summary line under 72 characters. A body is optional and is separated by a blank line.
5. Give at most 3 branch names and at most 3 commit messages.
6. Do not number the items, do not use markdown, do not add any other commentary.`
