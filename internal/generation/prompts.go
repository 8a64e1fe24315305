// Package generation builds the prompts for resume and cover-letter
// tailoring and invokes the chat model. The retrieval core does not depend
// on it; this is the thin layer between retrieved context and the
// generation service.
package generation

import (
	"fmt"
	"strings"
)

// writingRules distills legislature staff writing guidance into prompt
// instructions shared by both output types.
const writingRules = `
CA LEGISLATURE WRITING GUIDELINES (adapted for job applications):
- Be brief: Get to the point quickly. Cover letters: one page max.
- Introduce yourself simply: A plain statement of role/affiliation suffices.
- Be specific: Match concrete job requirements with concrete examples and outcomes.
- Make it personal: Use your own words. Tailor each application.
- Give your reasons: Explain why you're a fit and what value you bring.
- Be constructive: Emphasize solutions and contributions.
- Be courteous and reasonable: Professional tone throughout.
- Don't be vague: Use concrete outcomes, metrics, and examples.
- Don't apologize: No weak openings.
- Don't overstate: Credibility matters.
`

const systemBase = `You MUST follow these official CA Legislature writing guidelines:
` + writingRules + `
You are an expert resume and cover letter writer for California Legislature positions.
Match language and requirements from the job description.
Use ONLY information from the provided context—do not invent experience or qualifications.
`

const resumeSystem = systemBase + `
For resumes: Use ATS-friendly formatting. No tables, no graphics, no columns.
Use standard section headers: Experience, Education, Skills.
Simple bullet points. Plain text suitable for CalCareers and ATS systems.

CRITICAL: Do not mention a target office/person/committee in the resume unless it appears in the JOB DESCRIPTION.
If the retrieved context contains office-specific phrases from past tailored resumes, ignore them unless they are clearly past experience.
`

const coverLetterSystem = systemBase + `
For cover letters: Professional, concise, CA government-appropriate tone.
Structure: greeting, 2-3 paragraphs, sign-off.

CRITICAL—RECIPIENT / CONTACT INFO is the ONLY source for addressee details:
- Hiring Manager, Organization, and Job Title come ONLY from the RECIPIENT / CONTACT INFO block.
- IGNORE any hiring manager, office, or contact names mentioned in the JOB DESCRIPTION or the context.
- Use MY CONTACT INFO for the signature. Never use [Your Name].
`

// Contact identifies the applicant.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Recipient identifies the posting being applied to.
type Recipient struct {
	JobTitle      string
	HiringManager string
	Organization  string
	Email         string
	Phone         string
}

// ResumePrompt builds the system and user prompts for resume generation
// from the job description and the retrieved background context.
func ResumePrompt(jobDescription, context, jobTitle string, me Contact) (system, user string) {
	var contact []string
	appendIf(&contact, "Name", me.Name)
	appendIf(&contact, "Address", me.Address)
	appendIf(&contact, "Phone", me.Phone)
	appendIf(&contact, "Email", me.Email)

	var b strings.Builder
	if jobTitle != "" {
		fmt.Fprintf(&b, "Job title: %s\n\n", jobTitle)
	}
	if len(contact) > 0 {
		b.WriteString("MY CONTACT INFO (use to populate the resume header):\n")
		b.WriteString(strings.Join(contact, "\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "JOB DESCRIPTION:\n%s\n\n", jobDescription)
	fmt.Fprintf(&b, "RELEVANT INFORMATION FROM MY BACKGROUND (use only this—do not invent):\n%s\n\n", context)
	b.WriteString("Generate a tailored resume that matches the job requirements. Use only the information above.\n")
	b.WriteString("If MY CONTACT INFO is provided, include it at the top in a clean ATS-friendly header.")

	return resumeSystem, b.String()
}

// CoverLetterPrompt builds the system and user prompts for cover-letter
// generation.
func CoverLetterPrompt(jobDescription, context string, to Recipient, me Contact) (system, user string) {
	var recipient []string
	appendIf(&recipient, "Job title / Position", to.JobTitle)
	appendIf(&recipient, "Hiring manager (use for salutation)", to.HiringManager)
	appendIf(&recipient, "Organization/Office", to.Organization)
	appendIf(&recipient, "Contact email", to.Email)
	appendIf(&recipient, "Contact phone", to.Phone)

	var mine []string
	appendIf(&mine, "My name", me.Name)
	appendIf(&mine, "My address", me.Address)
	appendIf(&mine, "My phone", me.Phone)
	appendIf(&mine, "My email", me.Email)

	var b strings.Builder
	if len(recipient) > 0 {
		b.WriteString("RECIPIENT / CONTACT INFO — USE ONLY THESE VALUES for addressee, office, and position. ")
		b.WriteString("Do NOT use names or offices from the job description or context below:\n")
		b.WriteString(strings.Join(recipient, "\n"))
		b.WriteString("\n\n")
	}
	if len(mine) > 0 {
		b.WriteString("MY CONTACT INFO (use for signature / header as appropriate):\n")
		b.WriteString(strings.Join(mine, "\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "JOB DESCRIPTION:\n%s\n\n", jobDescription)
	fmt.Fprintf(&b, "RESUME (use this to tailor the cover letter—highlight relevant experience and skills from it):\n%s\n\n", context)
	b.WriteString("Generate a professional cover letter/email (one page max). ")
	b.WriteString("Use ONLY the Hiring Manager, Organization, and Job Title from the RECIPIENT block—ignore any such info in the job description or resume.")

	return coverLetterSystem, b.String()
}

func appendIf(lines *[]string, label, value string) {
	if strings.TrimSpace(value) != "" {
		*lines = append(*lines, label+": "+strings.TrimSpace(value))
	}
}
