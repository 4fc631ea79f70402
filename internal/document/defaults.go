package document

const defaultText = `# Cheatsheet Editor - Quick Start

Welcome to the Cheatsheet Editor! This guide will help you create your first cheatsheet.

## Getting Started

### What You're Looking At
- **Left Pane**: Your markdown editor
- **Right Pane**: Live preview of your cheatsheet
- **Top Bar**: Tools and controls

### Your First Edit
Try it now! Type some text in the editor and watch it appear in the preview instantly.

## Basic Markdown

### Headers
` + "```markdown" + `
# Big Header
## Medium Header
### Small Header
` + "```" + `

### Lists
` + "```markdown" + `
- Bullet point 1
- Bullet point 2
  - Nested item

1. Numbered item
2. Another item
` + "```" + `

### Code Blocks
Use triple backticks with a language for syntax highlighting.

### Inline Code
Use single backticks: ` + "`variableName`" + `

## Key Features

### Column Layouts
| Button | Description |
|--------|-------------|
| **1 Column** | Full-width single column |
| **2 Columns** | Side-by-side layout |
| **3 Columns** | Three-column layout |

### Font Size Control
| Button | Action |
|--------|--------|
| **A-** | Decrease font size |
| **A+** | Increase font size |

## Saving Your Work

### Auto-Save
Your work is automatically saved to your browser as you type!

### Backup (Recommended)
1. Click **Backup** button
2. Save the JSON file to your computer
3. Never lose your work!

### Restore
1. Click **Restore** button
2. Select a previously saved backup file
3. All content and settings are restored

## Export Options

### PDF Export
1. Click **Export PDF** button
2. Wait a moment for generation
3. Save the PDF to your computer
4. Perfect for printing or sharing!

## Tips & Tricks

### Make Better Cheatsheets
- Keep it concise and scannable
- Use headers to organize sections
- Include code examples
- Use tables for comparisons
- Test your PDF before sharing

---

**Now start creating! Delete this text and write your own cheatsheet.**
`
